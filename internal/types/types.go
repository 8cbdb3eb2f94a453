package types

import "strings"

type TerraformFiles struct {
	MainTf      string `json:"main_tf"`
	ProvidersTf string `json:"providers_tf"`
	VariablesTf string `json:"variables_tf"`
	OutputsTf   string `json:"outputs_tf"`
}

type TerraformVariable struct {
	Name        string
	Description string
	Type        string
	Default     string
	Sensitive   bool
}

type TerraformOutput struct {
	Name        string
	Description string
	// StackOutput is the CloudFormation output key the Terraform output reads from.
	StackOutput string
}

// StackTerraformRequest describes the aws_cloudformation_stack wrapper around an emitted template.
type StackTerraformRequest struct {
	ResourceName string
	StackName    string
	Region       string
	TemplateFile string
	// Parameters maps CloudFormation parameter names onto Terraform variables.
	Parameters []StackTerraformParameter
	Outputs    []TerraformOutput
}

type StackTerraformParameter struct {
	StackParameter string
	Variable       TerraformVariable
}

// PolicyType mirrors the AWS::AutoScaling::ScalingPolicy PolicyType values the assembler understands.
type PolicyType string

const (
	PolicyTypeSimpleScaling PolicyType = "SimpleScaling"
	PolicyTypeStepScaling   PolicyType = "StepScaling"
)

func (p PolicyType) IsValid() bool {
	switch p {
	case PolicyTypeSimpleScaling, PolicyTypeStepScaling:
		return true
	default:
		return false
	}
}

type AdjustmentType string

const (
	AdjustmentTypeChangeInCapacity        AdjustmentType = "ChangeInCapacity"
	AdjustmentTypeExactCapacity           AdjustmentType = "ExactCapacity"
	AdjustmentTypePercentChangeInCapacity AdjustmentType = "PercentChangeInCapacity"
)

func (a AdjustmentType) IsValid() bool {
	switch a {
	case AdjustmentTypeChangeInCapacity, AdjustmentTypeExactCapacity, AdjustmentTypePercentChangeInCapacity:
		return true
	default:
		return false
	}
}

// ListenerProtocol is compared case-insensitively, ELB accepts either spelling.
type ListenerProtocol string

const (
	ListenerProtocolHTTP  ListenerProtocol = "HTTP"
	ListenerProtocolHTTPS ListenerProtocol = "HTTPS"
	ListenerProtocolTCP   ListenerProtocol = "TCP"
	ListenerProtocolSSL   ListenerProtocol = "SSL"
)

func (l ListenerProtocol) Normalized() ListenerProtocol {
	return ListenerProtocol(strings.ToUpper(strings.TrimSpace(string(l))))
}

func (l ListenerProtocol) IsValid() bool {
	switch l.Normalized() {
	case ListenerProtocolHTTP, ListenerProtocolHTTPS, ListenerProtocolTCP, ListenerProtocolSSL:
		return true
	default:
		return false
	}
}

// IsSecure reports whether a listener on this protocol must carry a TLS certificate.
func (l ListenerProtocol) IsSecure() bool {
	return l.Normalized() == ListenerProtocolHTTPS
}

// IsRawTransport reports whether health checks on this protocol only open a connection, with no request path.
func (l ListenerProtocol) IsRawTransport() bool {
	switch l.Normalized() {
	case ListenerProtocolTCP, ListenerProtocolSSL:
		return true
	default:
		return false
	}
}

// Values returns all possible ListenerProtocol values as strings
func (l ListenerProtocol) Values() []string {
	return []string{
		string(ListenerProtocolHTTP),
		string(ListenerProtocolHTTPS),
		string(ListenerProtocolTCP),
		string(ListenerProtocolSSL),
	}
}

type SortOrder string

const (
	SortOrderAscending  SortOrder = "ascending"
	SortOrderDescending SortOrder = "descending"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortOrderAscending, SortOrderDescending:
		return true
	default:
		return false
	}
}

type OutputFormat string

const (
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// Extension returns the file extension used when writing a document in this format.
func (o OutputFormat) Extension() string {
	switch o {
	case OutputFormatYAML:
		return ".yaml"
	case OutputFormatMarkdown:
		return ".md"
	default:
		return ".json"
	}
}
