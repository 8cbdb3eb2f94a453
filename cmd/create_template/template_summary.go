package create_template

import (
	"fmt"
	"strings"

	"github.com/asgkit/asgkit/internal/services/cfn"
	"github.com/asgkit/asgkit/internal/services/markdown"
	"github.com/asgkit/asgkit/internal/services/metrics"
)

// BuildStackSummary describes the assembled stack as a markdown document.
func BuildStackSummary(stack *cfn.Stack, checks []metrics.MetricCheck) *markdown.Markdown {
	md := markdown.New().
		AddHeading(fmt.Sprintf("Stack %s", stack.Name), 1).
		AddParagraph(stack.Description)

	parameterRows := [][]string{}
	for _, p := range stack.Graph.Parameters() {
		def := ""
		if value, ok := p.Default.Get(); ok {
			def = describeValue(value)
		}
		parameterRows = append(parameterRows, []string{p.Name, string(p.Type), def})
	}
	md.AddHeading("Parameters", 2).AddTable([]string{"Name", "Type", "Default"}, parameterRows)

	resourceRows := [][]string{}
	for _, node := range stack.Graph.Nodes() {
		resourceRows = append(resourceRows, []string{string(node.Kind), node.Name, strings.Join(uniqueReferences(node), ", ")})
	}
	md.AddHeading("Resources", 2).AddTable([]string{"Type", "Name", "References"}, resourceRows, 0)

	outputRows := [][]string{}
	for _, output := range stack.Outputs {
		outputRows = append(outputRows, []string{output.Name, output.Description, describeValue(output.Value)})
	}
	md.AddHeading("Outputs", 2).AddTable([]string{"Name", "Description", "Value"}, outputRows)

	if len(checks) > 0 {
		checkRows := [][]string{}
		for _, check := range checks {
			status := "✅ published"
			if !check.Found {
				status = "⚠️ no data yet"
			}
			checkRows = append(checkRows, []string{check.Alarm, check.Namespace + "/" + check.MetricName, status})
		}
		md.AddHeading("Alarm metrics", 2).AddTable([]string{"Alarm", "Metric", "Status"}, checkRows)
	}

	return md
}

func describeValue(v cfn.Value) string {
	switch value := v.(type) {
	case cfn.String:
		return string(value)
	case cfn.Ref:
		return "Ref " + value.Target
	case cfn.GetAtt:
		return value.Target + "." + value.Attribute
	case cfn.Join:
		parts := make([]string, 0, len(value.Parts))
		for _, part := range value.Parts {
			parts = append(parts, describeValue(part))
		}
		return strings.Join(parts, value.Delimiter)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func uniqueReferences(node *cfn.Node) []string {
	seen := map[string]bool{}
	refs := []string{}
	for _, target := range node.References() {
		if !seen[target] {
			seen[target] = true
			refs = append(refs, target)
		}
	}
	return refs
}
