package emitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/asgkit/asgkit/internal/services/cfn"
	"github.com/asgkit/asgkit/internal/types"
	"github.com/goccy/go-yaml"
)

const TemplateFormatVersion = "2010-09-09"

var ErrUnsupportedFormat = errors.New("unsupported template format")

// Document renders an assembled stack as an ordered CloudFormation template tree.
func Document(stack *cfn.Stack) Records {
	parameters := Records{}
	for _, p := range stack.Graph.Parameters() {
		entry := Records{}.
			With("Type", string(p.Type)).
			With("Description", p.Description)
		if def, ok := p.Default.Get(); ok {
			entry = entry.With("Default", encodeValue(def))
		}
		parameters = parameters.With(p.Name, entry)
	}

	resources := Records{}
	for _, node := range stack.Graph.Nodes() {
		entry := Records{}.
			With("Type", string(node.Kind)).
			With("Properties", encodeValue(node.Properties))
		if len(node.UpdatePolicy) > 0 {
			entry = entry.With("UpdatePolicy", encodeValue(node.UpdatePolicy))
		}
		resources = resources.With(node.Name, entry)
	}

	outputs := Records{}
	for _, output := range stack.Outputs {
		outputs = outputs.With(output.Name, Records{}.
			With("Description", output.Description).
			With("Value", encodeValue(output.Value)))
	}

	return Records{}.
		With("AWSTemplateFormatVersion", TemplateFormatVersion).
		With("Description", stack.Description).
		With("Parameters", parameters).
		With("Resources", resources).
		With("Outputs", outputs)
}

// Emit serializes the stack as a JSON or YAML template.
func Emit(stack *cfn.Stack, format types.OutputFormat) ([]byte, error) {
	doc := Document(stack)

	slog.Debug("emitting template", "stack", stack.Name, "format", format)

	switch format {
	case types.OutputFormatJSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode template as json: %w", err)
		}
		return append(data, '\n'), nil
	case types.OutputFormatYAML:
		data, err := yaml.MarshalWithOptions(toYAML(doc), yaml.Indent(2), yaml.IndentSequence(true))
		if err != nil {
			return nil, fmt.Errorf("failed to encode template as yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func encodeValue(v cfn.Value) any {
	switch value := v.(type) {
	case cfn.String:
		return string(value)
	case cfn.Int:
		return int64(value)
	case cfn.Float:
		return float64(value)
	case cfn.Bool:
		return bool(value)
	case cfn.List:
		return encodeList(value)
	case cfn.Object:
		records := make(Records, 0, len(value))
		for _, field := range value {
			records = records.With(field.Key, encodeValue(field.Value))
		}
		return records
	case cfn.Ref:
		return Records{}.With("Ref", value.Target)
	case cfn.GetAtt:
		return Records{}.With("Fn::GetAtt", []any{value.Target, value.Attribute})
	case cfn.Join:
		return Records{}.With("Fn::Join", []any{value.Delimiter, encodeList(value.Parts)})
	default:
		return nil
	}
}

func encodeList(values []cfn.Value) []any {
	items := make([]any, 0, len(values))
	for _, item := range values {
		items = append(items, encodeValue(item))
	}
	return items
}
