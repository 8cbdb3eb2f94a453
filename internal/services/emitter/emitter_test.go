package emitter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/asgkit/asgkit/internal/services/cfn"
	"github.com/asgkit/asgkit/internal/types"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStack(t *testing.T) *cfn.Stack {
	t.Helper()

	descriptor := types.StackDescriptor{
		ProjectName:        "api",
		EnableLoadBalancer: true,
		Parameters: types.StackParameters{
			MinScale:                "1",
			MaxScale:                "3",
			Environment:             "prod",
			Subnets:                 []string{"subnet-a"},
			LaunchConfigurationName: "api-v1",
			HostedZoneName:          "example.com",
			DNSRecord:               "api",
			LoadBalancerName:        "api-elb",
		},
		ScalingPolicies: []types.ScalingPolicySpec{
			{Name: "scale-up", AdjustmentType: "ChangeInCapacity", Cooldown: 300, PolicyType: "SimpleScaling", ScalingAdjustment: 1},
		},
		Alarms: []types.AlarmSpec{
			{
				Name: "cpu-high", ComparisonOperator: "GreaterThanThreshold", MetricName: "CPUUtilization",
				Namespace: "AWS/EC2", Statistic: "Average", Period: 60, EvaluationPeriods: 2, Threshold: 80,
				ScalingPolicyName: "scale-up",
			},
		},
	}

	stack, err := cfn.NewAssembler().Assemble(descriptor)
	require.NoError(t, err)
	return stack
}

func TestRecords_MarshalJSON_KeepsOrder(t *testing.T) {
	records := Records{}.With("z", 1).With("a", Records{}.With("y", "x").With("b", true))

	data, err := json.Marshal(records)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"y":"x","b":true}}`, string(data))
}

func TestEmit_JSON(t *testing.T) {
	data, err := Emit(testStack(t), types.OutputFormatJSON)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "{\n  \"AWSTemplateFormatVersion\": \"2010-09-09\""))

	sections := []string{`"Description"`, `"Parameters"`, `"Resources"`, `"Outputs"`}
	last := -1
	for _, section := range sections {
		index := strings.Index(text, section)
		require.NotEqual(t, -1, index, section)
		assert.Greater(t, index, last, "%s out of order", section)
		last = index
	}

	var template map[string]any
	require.NoError(t, json.Unmarshal(data, &template))

	resources := template["Resources"].(map[string]any)
	record := resources[cfn.RecordSetNodeName].(map[string]any)
	assert.Equal(t, "AWS::Route53::RecordSet", record["Type"])

	properties := record["Properties"].(map[string]any)
	assert.Equal(t,
		[]any{map[string]any{"Fn::GetAtt": []any{"LoadBalancer", "DNSName"}}},
		properties["ResourceRecords"])
	assert.Equal(t,
		map[string]any{"Fn::Join": []any{"", []any{map[string]any{"Ref": "HostedZoneName"}, "."}}},
		properties["HostedZoneName"])

	alarm := resources["CpuHighAlarm"].(map[string]any)["Properties"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"Ref": "ScaleUpPolicy"}}, alarm["AlarmActions"])

	asg := resources[cfn.AutoScalingGroupNodeName].(map[string]any)
	assert.Contains(t, asg, "UpdatePolicy")

	params := template["Parameters"].(map[string]any)
	minScale := params["MinScale"].(map[string]any)
	assert.Equal(t, "1", minScale["Default"])
	assert.Equal(t, "String", minScale["Type"])

	outputs := template["Outputs"].(map[string]any)
	assert.Equal(t, map[string]any{"Ref": "AWS::StackName"}, outputs["StackName"].(map[string]any)["Value"])
}

func TestEmit_IsByteStable(t *testing.T) {
	for _, format := range []types.OutputFormat{types.OutputFormatJSON, types.OutputFormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			first, err := Emit(testStack(t), format)
			require.NoError(t, err)
			second, err := Emit(testStack(t), format)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestEmit_YAML(t *testing.T) {
	data, err := Emit(testStack(t), types.OutputFormatYAML)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "AWSTemplateFormatVersion:"))
	assert.Less(t, strings.Index(text, "Parameters:"), strings.Index(text, "Resources:"))
	assert.Less(t, strings.Index(text, "Resources:"), strings.Index(text, "Outputs:"))

	var template map[string]any
	require.NoError(t, yaml.Unmarshal(data, &template))

	resources := template["Resources"].(map[string]any)
	lb := resources[cfn.LoadBalancerNodeName].(map[string]any)
	assert.Equal(t, "AWS::ElasticLoadBalancing::LoadBalancer", lb["Type"])

	record := resources[cfn.RecordSetNodeName].(map[string]any)["Properties"].(map[string]any)
	assert.Equal(t,
		[]any{map[string]any{"Fn::GetAtt": []any{"LoadBalancer", "DNSName"}}},
		record["ResourceRecords"])
}

func TestEmit_UnsupportedFormat(t *testing.T) {
	_, err := Emit(testStack(t), types.OutputFormatMarkdown)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
