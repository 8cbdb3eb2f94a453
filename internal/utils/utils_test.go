package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MinScale", "min_scale"},
		{"LoadBalancerHealthCheckInterval", "load_balancer_health_check_interval"},
		{"LoadBalancerUnHealthyThreshold", "load_balancer_un_healthy_threshold"},
		{"DNSRecord", "dns_record"},
		{"HostedZoneName", "hosted_zone_name"},
		{"api-service", "api_service"},
		{"already_snake", "already_snake"},
		{"Subnets2", "subnets2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnakeCase(tt.input))
		})
	}
}

func TestRequireOneOf(t *testing.T) {
	assert.NoError(t, RequireOneOf("format", "yaml", []string{"json", "yaml"}))

	err := RequireOneOf("format", "xml", []string{"json", "yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
	assert.Contains(t, err.Error(), "json, yaml")
}

func TestTokensForMap_IsSorted(t *testing.T) {
	f := hclwrite.NewEmptyFile()
	f.Body().SetAttributeRaw("parameters", TokensForMap(map[string]hclwrite.Tokens{
		"MinScale":      TokensForVarReference("min_scale"),
		"Environment":   TokensForVarReference("environment"),
		"ScaleCapacity": TokensForVarReference("scale_capacity"),
	}))
	out := string(f.Bytes())

	_, diags := hclsyntax.ParseConfig(f.Bytes(), "main.tf", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())

	environment := strings.Index(out, "Environment")
	minScale := strings.Index(out, "MinScale")
	scaleCapacity := strings.Index(out, "ScaleCapacity")
	assert.Less(t, environment, minScale)
	assert.Less(t, minScale, scaleCapacity)
	assert.Contains(t, out, "var.scale_capacity")
}

func TestTokensForIndex(t *testing.T) {
	f := hclwrite.NewEmptyFile()
	f.Body().SetAttributeRaw("value", TokensForIndex("aws_cloudformation_stack.api.outputs", "DomainName"))

	_, diags := hclsyntax.ParseConfig(f.Bytes(), "outputs.tf", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Contains(t, string(f.Bytes()), `aws_cloudformation_stack.api.outputs["DomainName"]`)
}

func TestBindEnvToFlags(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "from-env")
	t.Setenv("REGION", "eu-west-1")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("output-dir", "", "")
	cmd.Flags().String("region", "", "")
	require.NoError(t, cmd.Flags().Set("region", "us-east-1"))

	require.NoError(t, BindEnvToFlags(cmd))

	outputDir, _ := cmd.Flags().GetString("output-dir")
	region, _ := cmd.Flags().GetString("region")
	assert.Equal(t, "from-env", outputDir)
	assert.Equal(t, "us-east-1", region, "explicit flags win over the environment")
}

func TestWriteOutputFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := WriteOutputFile(dir, "template.json", []byte("{}"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
