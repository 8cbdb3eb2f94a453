package cfn

import "strings"

// Kind is the CloudFormation resource type of a node.
type Kind string

const (
	KindAutoScalingGroup Kind = "AWS::AutoScaling::AutoScalingGroup"
	KindLoadBalancer     Kind = "AWS::ElasticLoadBalancing::LoadBalancer"
	KindRecordSet        Kind = "AWS::Route53::RecordSet"
	KindScalingPolicy    Kind = "AWS::AutoScaling::ScalingPolicy"
	KindAlarm            Kind = "AWS::CloudWatch::Alarm"
)

// Node is one declarative resource of the graph.
type Node struct {
	Name       string
	Kind       Kind
	Properties Object
	// UpdatePolicy is a resource attribute rather than a property; nil when unset.
	UpdatePolicy Object
}

func (n *Node) Property(key string) (Value, bool) {
	return n.Properties.Get(key)
}

func (n *Node) Ref() Ref {
	return Ref{Target: n.Name}
}

func (n *Node) GetAtt(attribute string) GetAtt {
	return GetAtt{Target: n.Name, Attribute: attribute}
}

// References lists the names this node points at, properties first.
func (n *Node) References() []string {
	refs := References(n.Properties)
	return append(refs, References(n.UpdatePolicy)...)
}

type ParameterType string

const (
	ParameterTypeString             ParameterType = "String"
	ParameterTypeCommaDelimitedList ParameterType = "CommaDelimitedList"
)

// Parameter is a pass-through template parameter; Default carries the descriptor's value.
type Parameter struct {
	Name        string
	Type        ParameterType
	Description string
	Default     Optional
}

func (p Parameter) Ref() Ref {
	return Ref{Target: p.Name}
}

// Output is one named, externally visible value of the stack.
type Output struct {
	Name        string
	Description string
	Value       Value
}

// OutputTable keeps outputs in insertion order.
type OutputTable []Output

func (t OutputTable) Get(name string) (Output, bool) {
	for _, output := range t {
		if output.Name == name {
			return output, true
		}
	}
	return Output{}, false
}

func (t OutputTable) Names() []string {
	names := make([]string, 0, len(t))
	for _, output := range t {
		names = append(names, output.Name)
	}
	return names
}

// LogicalID turns a user-supplied name such as "scale-up" into an alphanumeric CloudFormation
// logical ID ("ScaleUp").
func LogicalID(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteString(strings.ToUpper(string(r)))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isPseudoParameter(name string) bool {
	return strings.HasPrefix(name, "AWS::")
}
