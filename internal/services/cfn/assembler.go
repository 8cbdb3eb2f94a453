package cfn

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/asgkit/asgkit/internal/types"
)

const (
	AutoScalingGroupNodeName = "AutoscalingGroup"

	ParamScaleCapacity             = "ScaleCapacity"
	ParamMinScale                  = "MinScale"
	ParamMaxScale                  = "MaxScale"
	ParamEnvironment               = "Environment"
	ParamSubnets                   = "Subnets"
	ParamLaunchConfigurationName   = "LaunchConfigurationName"
	ParamHostedZoneName            = "HostedZoneName"
	ParamDNSRecord                 = "DNSRecord"
	ParamLoadBalancerSecurityGroup = "LoadBalancerSecurityGroup"
	ParamLoadBalancerName          = "LoadBalancerName"
	ParamLoadBalancerSchema        = "LoadBalancerSchema"
	ParamHealthCheckInterval       = "LoadBalancerHealthCheckInterval"
	ParamHealthCheckTimeout        = "LoadBalancerHealthCheckTimeout"
	ParamHealthyThreshold          = "LoadBalancerHealthyThreshold"
	ParamUnhealthyThreshold        = "LoadBalancerUnHealthyThreshold"
)

// Assembler turns a stack descriptor into a cross-referenced resource graph.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble builds the graph in one pass. Either every node is built and every reference
// resolves, or a *ConfigurationError listing all problems is returned and no graph at all.
func (a *Assembler) Assemble(descriptor types.StackDescriptor) (*Stack, error) {
	run := &assembly{
		descriptor: descriptor,
		params:     descriptor.Parameters.WithDefaults(),
		graph:      NewGraph(),
		policies:   NewReferenceTable(),
	}

	return run.assemble()
}

// assembly is the state of a single run; nothing in it outlives Assemble.
type assembly struct {
	descriptor types.StackDescriptor
	params     types.StackParameters
	graph      *Graph
	policies   *ReferenceTable
	errs       []error
}

func (r *assembly) assemble() (*Stack, error) {
	topo := selectTopology(r.descriptor.EnableLoadBalancer)

	r.addParameters(topo)
	topo.addNodes(r)
	asg := r.addAutoScalingGroup(topo)
	r.addScalingPolicies(asg)
	r.policies.Seal()
	r.addAlarms(asg)
	outputs := r.buildOutputs(topo, asg)

	if len(r.errs) > 0 {
		return nil, &ConfigurationError{Stack: r.descriptor.ProjectName, Errs: r.errs}
	}

	slog.Debug("assembled stack graph",
		"stack", r.descriptor.ProjectName,
		"parameters", len(r.graph.parameters),
		"resources", len(r.graph.nodes),
		"outputs", len(outputs))

	return &Stack{
		Name:        r.descriptor.ProjectName,
		Description: r.descriptor.TemplateDescription(),
		Graph:       r.graph,
		Outputs:     outputs,
	}, nil
}

func (r *assembly) fail(err error) {
	r.errs = append(r.errs, err)
}

func (r *assembly) add(n *Node) bool {
	if err := r.graph.AddNode(n); err != nil {
		r.fail(err)
		return false
	}
	return true
}

func (r *assembly) addParameters(topo topology) {
	p := r.params
	params := []Parameter{
		{Name: ParamScaleCapacity, Type: ParameterTypeString, Description: "Number of api servers to run", Default: defaultOf(p.ScaleCapacity)},
		{Name: ParamMinScale, Type: ParameterTypeString, Description: "Minimum number of servers to keep in the ASG", Default: defaultOf(p.MinScale)},
		{Name: ParamMaxScale, Type: ParameterTypeString, Description: "Maximum number of servers to keep in the ASG", Default: defaultOf(p.MaxScale)},
		{Name: ParamEnvironment, Type: ParameterTypeString, Description: "The environment being deployed into", Default: defaultOf(p.Environment)},
		{Name: ParamSubnets, Type: ParameterTypeCommaDelimitedList, Description: "Subnets the instances are launched into", Default: defaultOf(strings.Join(p.Subnets, ","))},
		{Name: ParamLaunchConfigurationName, Type: ParameterTypeString, Description: "Launch configuration used by the Auto Scaling Group", Default: defaultOf(p.LaunchConfigurationName)},
	}

	for _, param := range append(params, topo.parameters(p)...) {
		if err := r.graph.AddParameter(param); err != nil {
			r.fail(err)
		}
	}
}

func (r *assembly) addAutoScalingGroup(topo topology) *Node {
	environmentTag := Object{}.
		With("Key", String("Environment")).
		With("Value", Ref{Target: ParamEnvironment}).
		With("PropagateAtLaunch", Bool(true))

	asg := &Node{
		Name: AutoScalingGroupNodeName,
		Kind: KindAutoScalingGroup,
		Properties: Object{}.
			With("Tags", List{environmentTag}).
			With("LaunchConfigurationName", Ref{Target: ParamLaunchConfigurationName}).
			With("MinSize", Ref{Target: ParamMinScale}).
			With("MaxSize", Ref{Target: ParamMaxScale}).
			With("DesiredCapacity", Ref{Target: ParamScaleCapacity}).
			WithOptional("LoadBalancerNames", topo.loadBalancerNames()).
			With("VPCZoneIdentifier", Ref{Target: ParamSubnets}).
			With("HealthCheckType", String(topo.healthCheckType())).
			With("HealthCheckGracePeriod", Int(*r.params.HealthCheckGracePeriod)),
		UpdatePolicy: Object{}.With("AutoScalingRollingUpdate", Object{}.
			With("PauseTime", String("PT1M")).
			With("MinInstancesInService", String("1")).
			With("MaxBatchSize", String("1"))),
	}

	r.add(asg)
	return asg
}

func (r *assembly) addScalingPolicies(asg *Node) {
	for _, spec := range r.descriptor.ScalingPolicies {
		if r.policies.Has(spec.Name) {
			r.fail(&DuplicateNameError{Namespace: "scaling policy", Name: spec.Name})
			continue
		}

		node := &Node{
			Name:       LogicalID(spec.Name) + "Policy",
			Kind:       KindScalingPolicy,
			Properties: scalingPolicyProperties(spec, asg.Ref()),
		}
		if !r.add(node) {
			continue
		}
		if err := r.policies.Put(spec.Name, node); err != nil {
			r.fail(err)
		}
	}
}

// scalingPolicyProperties applies the sparse-field rules: step settings only exist for
// non-simple policies and the minimum magnitude only for percentage adjustments, and in
// both cases only when the descriptor supplied them.
func scalingPolicyProperties(spec types.ScalingPolicySpec, asg Ref) Object {
	stepped := types.PolicyType(spec.PolicyType) != types.PolicyTypeSimpleScaling
	percentage := types.AdjustmentType(spec.AdjustmentType) == types.AdjustmentTypePercentChangeInCapacity

	return Object{}.
		With("AutoScalingGroupName", asg).
		With("AdjustmentType", String(spec.AdjustmentType)).
		With("Cooldown", String(strconv.FormatInt(spec.Cooldown, 10))).
		With("PolicyType", String(spec.PolicyType)).
		With("ScalingAdjustment", Int(spec.ScalingAdjustment)).
		WithOptional("EstimatedInstanceWarmup", IncludeIfSet(stepped, spec.EstimatedInstanceWarmup, intValue)).
		WithOptional("MetricAggregationType", IncludeIfSet(stepped, spec.MetricAggregationType, stringValue)).
		WithOptional("StepAdjustments", stepAdjustments(stepped, spec.StepAdjustments)).
		WithOptional("MinAdjustmentMagnitude", IncludeIfSet(percentage, spec.MinAdjustmentMagnitude, intValue))
}

func stepAdjustments(stepped bool, specs []types.StepAdjustmentSpec) Optional {
	if len(specs) == 0 {
		return Absent
	}

	adjustments := make(List, 0, len(specs))
	for _, spec := range specs {
		adjustments = append(adjustments, Object{}.
			WithOptional("MetricIntervalLowerBound", IncludeIfSet(true, spec.MetricIntervalLowerBound, floatValue)).
			WithOptional("MetricIntervalUpperBound", IncludeIfSet(true, spec.MetricIntervalUpperBound, floatValue)).
			With("ScalingAdjustment", Int(spec.ScalingAdjustment)))
	}

	return IncludeIf(stepped, adjustments)
}

func (r *assembly) addAlarms(asg *Node) {
	seen := map[string]struct{}{}

	for _, spec := range r.descriptor.Alarms {
		if _, duplicate := seen[spec.Name]; duplicate {
			r.fail(&DuplicateNameError{Namespace: "alarm", Name: spec.Name})
			continue
		}
		seen[spec.Name] = struct{}{}

		policy, ok := r.policies.Get(spec.ScalingPolicyName)
		if !ok {
			r.fail(&UnresolvedReferenceError{FromKind: "alarm", From: spec.Name, ToKind: "scaling policy", To: spec.ScalingPolicyName})
			continue
		}

		r.add(&Node{
			Name:       LogicalID(spec.Name) + "Alarm",
			Kind:       KindAlarm,
			Properties: alarmProperties(spec, asg.Ref(), policy.Ref()),
		})
	}
}

func alarmProperties(spec types.AlarmSpec, asg Ref, policy Ref) Object {
	dimension := Object{}.
		With("Name", String("AutoScalingGroupName")).
		With("Value", asg)

	return Object{}.
		WithOptional("AlarmDescription", defaultOf(spec.Description)).
		With("ComparisonOperator", String(spec.ComparisonOperator)).
		With("MetricName", String(spec.MetricName)).
		With("Namespace", String(spec.Namespace)).
		With("Statistic", String(spec.Statistic)).
		With("Period", Int(spec.Period)).
		With("EvaluationPeriods", Int(spec.EvaluationPeriods)).
		With("Threshold", Float(spec.Threshold)).
		WithOptional("Unit", defaultOf(spec.Unit)).
		With("AlarmActions", List{policy}).
		With("Dimensions", List{dimension})
}

func (r *assembly) buildOutputs(topo topology, asg *Node) OutputTable {
	outputs := OutputTable{
		{Name: "StackName", Description: "Name of the deployed stack", Value: Ref{Target: "AWS::StackName"}},
	}
	outputs = append(outputs, topo.outputs()...)
	outputs = append(outputs,
		Output{Name: "AutoScalingGroup", Description: "Created Auto Scaling Group", Value: asg.Ref()},
		Output{Name: "LaunchConfiguration", Description: "LaunchConfiguration for this deploy", Value: Ref{Target: ParamLaunchConfigurationName}},
	)

	for _, output := range outputs {
		for _, target := range References(output.Value) {
			if !isPseudoParameter(target) && !r.graph.Has(target) {
				r.fail(&UnresolvedReferenceError{FromKind: "output", From: output.Name, ToKind: "resource", To: target})
			}
		}
	}

	return outputs
}

func defaultOf(value string) Optional {
	return IncludeIf(strings.TrimSpace(value) != "", String(value))
}

func intValue(v int64) Value     { return Int(v) }
func floatValue(v float64) Value { return Float(v) }
func stringValue(v string) Value { return String(v) }
