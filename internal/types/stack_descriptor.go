package types

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	DefaultTemplateDescription    = "Configures Auto Scaling Group for the app"
	DefaultScaleCapacity          = "1"
	DefaultHealthCheckGracePeriod = 30
	DefaultLoadBalancerSchema     = "internet-facing"
	DefaultHealthCheckProtocol    = "HTTP"
	DefaultHealthCheckPort        = "80"
	DefaultHealthCheckPath        = "/"
	DefaultHealthCheckInterval    = "30"
	DefaultHealthCheckTimeout     = "5"
	DefaultHealthyThreshold       = "3"
	DefaultUnhealthyThreshold     = "5"
	DefaultAccessLogEmitInterval  = 60
)

// StackDescriptor is the complete input of one template assembly run.
type StackDescriptor struct {
	ProjectName        string              `yaml:"project_name" hcl:"project_name" validate:"required"`
	Description        string              `yaml:"description,omitempty" hcl:"description,optional"`
	EnableLoadBalancer bool                `yaml:"enable_load_balancer" hcl:"enable_load_balancer,optional"`
	Parameters         StackParameters     `yaml:"parameters" hcl:"parameters,block"`
	Listeners          []ListenerSpec      `yaml:"listeners,omitempty" hcl:"listener,block" validate:"dive"`
	ScalingPolicies    []ScalingPolicySpec `yaml:"scaling_policies,omitempty" hcl:"scaling_policy,block" validate:"dive"`
	Alarms             []AlarmSpec         `yaml:"alarms,omitempty" hcl:"alarm,block" validate:"dive"`
}

// StackParameters are opaque values passed through to template parameters.
type StackParameters struct {
	ScaleCapacity           string   `yaml:"scale_capacity,omitempty" hcl:"scale_capacity,optional"`
	MinScale                string   `yaml:"min_scale" hcl:"min_scale" validate:"required"`
	MaxScale                string   `yaml:"max_scale" hcl:"max_scale" validate:"required"`
	Environment             string   `yaml:"environment" hcl:"environment" validate:"required"`
	Subnets                 []string `yaml:"subnets" hcl:"subnets" validate:"required,min=1,dive,required"`
	LaunchConfigurationName string   `yaml:"launch_configuration_name" hcl:"launch_configuration_name" validate:"required"`
	HealthCheckGracePeriod  *int64   `yaml:"health_check_grace_period,omitempty" hcl:"health_check_grace_period,optional" validate:"omitempty,min=0"`

	HostedZoneName             string   `yaml:"hosted_zone_name,omitempty" hcl:"hosted_zone_name,optional"`
	DNSRecord                  string   `yaml:"dns_record,omitempty" hcl:"dns_record,optional"`
	LoadBalancerName           string   `yaml:"load_balancer_name,omitempty" hcl:"load_balancer_name,optional"`
	LoadBalancerSchema         string   `yaml:"load_balancer_schema,omitempty" hcl:"load_balancer_schema,optional"`
	LoadBalancerSecurityGroups []string `yaml:"load_balancer_security_groups,omitempty" hcl:"load_balancer_security_groups,optional"`

	HealthCheckProtocol string `yaml:"health_check_protocol,omitempty" hcl:"health_check_protocol,optional" validate:"omitempty,elb_protocol"`
	HealthCheckPort     string `yaml:"health_check_port,omitempty" hcl:"health_check_port,optional"`
	HealthCheckPath     string `yaml:"health_check_path,omitempty" hcl:"health_check_path,optional"`
	HealthCheckInterval string `yaml:"health_check_interval,omitempty" hcl:"health_check_interval,optional"`
	HealthCheckTimeout  string `yaml:"health_check_timeout,omitempty" hcl:"health_check_timeout,optional"`
	HealthyThreshold    string `yaml:"healthy_threshold,omitempty" hcl:"healthy_threshold,optional"`
	UnhealthyThreshold  string `yaml:"unhealthy_threshold,omitempty" hcl:"unhealthy_threshold,optional"`

	AccessLogBucket       string `yaml:"access_log_bucket,omitempty" hcl:"access_log_bucket,optional"`
	AccessLogPrefix       string `yaml:"access_log_prefix,omitempty" hcl:"access_log_prefix,optional"`
	AccessLogEmitInterval *int64 `yaml:"access_log_emit_interval,omitempty" hcl:"access_log_emit_interval,optional" validate:"omitempty,oneof=5 60"`
}

type ListenerSpec struct {
	LoadBalancerPort int64  `yaml:"load_balancer_port" hcl:"load_balancer_port" validate:"min=1,max=65535"`
	InstancePort     int64  `yaml:"instance_port" hcl:"instance_port" validate:"min=1,max=65535"`
	Protocol         string `yaml:"protocol" hcl:"protocol" validate:"required,elb_protocol"`
	InstanceProtocol string `yaml:"instance_protocol,omitempty" hcl:"instance_protocol,optional" validate:"omitempty,elb_protocol"`
	// SSLCertificateID is only emitted for HTTPS listeners.
	SSLCertificateID *string `yaml:"ssl_certificate_id,omitempty" hcl:"ssl_certificate_id,optional"`
}

type ScalingPolicySpec struct {
	Name              string `yaml:"name" hcl:"name,label" validate:"required"`
	AdjustmentType    string `yaml:"adjustment_type" hcl:"adjustment_type" validate:"required,adjustment_type"`
	Cooldown          int64  `yaml:"cooldown" hcl:"cooldown" validate:"min=0"`
	PolicyType        string `yaml:"policy_type" hcl:"policy_type" validate:"required,policy_type"`
	ScalingAdjustment int64  `yaml:"scaling_adjustment" hcl:"scaling_adjustment"`

	// Only materialized when PolicyType is not SimpleScaling.
	EstimatedInstanceWarmup *int64               `yaml:"estimated_instance_warmup,omitempty" hcl:"estimated_instance_warmup,optional" validate:"omitempty,min=0"`
	MetricAggregationType   *string              `yaml:"metric_aggregation_type,omitempty" hcl:"metric_aggregation_type,optional" validate:"omitempty,oneof=Minimum Maximum Average"`
	StepAdjustments         []StepAdjustmentSpec `yaml:"step_adjustments,omitempty" hcl:"step_adjustment,block" validate:"dive"`

	// Only materialized when AdjustmentType is PercentChangeInCapacity.
	MinAdjustmentMagnitude *int64 `yaml:"min_adjustment_magnitude,omitempty" hcl:"min_adjustment_magnitude,optional" validate:"omitempty,min=1"`
}

type StepAdjustmentSpec struct {
	MetricIntervalLowerBound *float64 `yaml:"metric_interval_lower_bound,omitempty" hcl:"metric_interval_lower_bound,optional"`
	MetricIntervalUpperBound *float64 `yaml:"metric_interval_upper_bound,omitempty" hcl:"metric_interval_upper_bound,optional"`
	ScalingAdjustment        int64    `yaml:"scaling_adjustment" hcl:"scaling_adjustment"`
}

type AlarmSpec struct {
	Name               string  `yaml:"name" hcl:"name,label" validate:"required"`
	Description        string  `yaml:"description,omitempty" hcl:"description,optional"`
	ComparisonOperator string  `yaml:"comparison_operator" hcl:"comparison_operator" validate:"required,cw_comparison_operator"`
	MetricName         string  `yaml:"metric_name" hcl:"metric_name" validate:"required"`
	Namespace          string  `yaml:"namespace" hcl:"namespace" validate:"required"`
	Statistic          string  `yaml:"statistic" hcl:"statistic" validate:"required,cw_statistic"`
	Period             int64   `yaml:"period" hcl:"period" validate:"min=1"`
	EvaluationPeriods  int64   `yaml:"evaluation_periods" hcl:"evaluation_periods" validate:"min=1"`
	Threshold          float64 `yaml:"threshold" hcl:"threshold"`
	Unit               string  `yaml:"unit,omitempty" hcl:"unit,optional" validate:"omitempty,cw_unit"`
	ScalingPolicyName  string  `yaml:"scaling_policy_name" hcl:"scaling_policy_name" validate:"required"`
}

// NewStackDescriptorFromFile loads a descriptor from a YAML, JSON or HCL file and validates its shape.
// Cross-references between policies and alarms are checked later, during assembly.
func NewStackDescriptorFromFile(descriptorPath string) (*StackDescriptor, []error) {
	data, err := os.ReadFile(descriptorPath)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read descriptor file: %w", err)}
	}

	descriptor, err := ParseStackDescriptor(data, descriptorPath)
	if err != nil {
		return nil, []error{err}
	}

	if valid, errs := descriptor.Validate(); !valid {
		return nil, errs
	}

	return descriptor, nil
}

// ParseStackDescriptor decodes descriptor bytes, picking the decoder from the file extension.
func ParseStackDescriptor(data []byte, filename string) (*StackDescriptor, error) {
	var descriptor StackDescriptor

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(data, filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %s", filename, diags.Error())
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &descriptor); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %s", filename, diags.Error())
		}
	case ".yaml", ".yml", ".json":
		if err := yaml.UnmarshalWithOptions(data, &descriptor, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to unmarshal descriptor %s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q: expected .yaml, .yml, .json or .hcl", filepath.Ext(filename))
	}

	return &descriptor, nil
}

func (d StackDescriptor) TemplateDescription() string {
	if d.Description != "" {
		return d.Description
	}
	return DefaultTemplateDescription
}

// WithDefaults returns a copy with every unset optional value replaced by its default.
func (p StackParameters) WithDefaults() StackParameters {
	setDefault(&p.ScaleCapacity, DefaultScaleCapacity)
	setDefault(&p.LoadBalancerSchema, DefaultLoadBalancerSchema)
	setDefault(&p.HealthCheckProtocol, DefaultHealthCheckProtocol)
	setDefault(&p.HealthCheckPort, DefaultHealthCheckPort)
	setDefault(&p.HealthCheckPath, DefaultHealthCheckPath)
	setDefault(&p.HealthCheckInterval, DefaultHealthCheckInterval)
	setDefault(&p.HealthCheckTimeout, DefaultHealthCheckTimeout)
	setDefault(&p.HealthyThreshold, DefaultHealthyThreshold)
	setDefault(&p.UnhealthyThreshold, DefaultUnhealthyThreshold)

	if p.HealthCheckGracePeriod == nil {
		gracePeriod := int64(DefaultHealthCheckGracePeriod)
		p.HealthCheckGracePeriod = &gracePeriod
	}
	if p.AccessLogEmitInterval == nil {
		emitInterval := int64(DefaultAccessLogEmitInterval)
		p.AccessLogEmitInterval = &emitInterval
	}

	return p
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}
