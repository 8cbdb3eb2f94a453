package hcl

import (
	"github.com/asgkit/asgkit/internal/services/cfn"
	"github.com/asgkit/asgkit/internal/services/hcl/aws"
	"github.com/asgkit/asgkit/internal/types"
	"github.com/asgkit/asgkit/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const StackNameVariable = "stack_name"

type StackHCLService struct {
}

func NewStackHCLService() *StackHCLService {
	return &StackHCLService{}
}

// BuildStackTerraformRequest maps every stack parameter onto a Terraform variable defaulting to
// the descriptor's value, and every stack output onto a Terraform output.
func (s *StackHCLService) BuildStackTerraformRequest(stack *cfn.Stack, region, templateFile string) types.StackTerraformRequest {
	request := types.StackTerraformRequest{
		ResourceName: utils.FormatHclResourceName(stack.Name),
		StackName:    stack.Name,
		Region:       region,
		TemplateFile: templateFile,
	}

	for _, p := range stack.Graph.Parameters() {
		variable := types.TerraformVariable{
			Name:        utils.ToSnakeCase(p.Name),
			Description: p.Description,
			Type:        "string",
		}
		if def, ok := p.Default.Get(); ok {
			if str, isString := def.(cfn.String); isString {
				variable.Default = string(str)
			}
		}

		request.Parameters = append(request.Parameters, types.StackTerraformParameter{
			StackParameter: p.Name,
			Variable:       variable,
		})
	}

	for _, output := range stack.Outputs {
		request.Outputs = append(request.Outputs, types.TerraformOutput{
			Name:        utils.ToSnakeCase(output.Name),
			Description: output.Description,
			StackOutput: output.Name,
		})
	}

	return request
}

func (s *StackHCLService) GenerateStackFiles(request types.StackTerraformRequest) (types.TerraformFiles, error) {
	return types.TerraformFiles{
		MainTf:      s.generateMainTf(request),
		ProvidersTf: s.generateProvidersTf(),
		VariablesTf: s.generateVariablesTf(request),
		OutputsTf:   s.generateOutputsTf(request),
	}, nil
}

func (s *StackHCLService) generateMainTf(request types.StackTerraformRequest) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	parameters := make(map[string]string, len(request.Parameters))
	for _, p := range request.Parameters {
		parameters[p.StackParameter] = p.Variable.Name
	}

	rootBody.AppendBlock(aws.GenerateCloudFormationStackResource(request.ResourceName, StackNameVariable, request.TemplateFile, parameters))
	rootBody.AppendNewline()

	return string(f.Bytes())
}

func (s *StackHCLService) generateProvidersTf() string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	terraformBlock := rootBody.AppendNewBlock("terraform", nil)
	requiredProvidersBlock := terraformBlock.Body().AppendNewBlock("required_providers", nil)
	requiredProvidersBlock.Body().SetAttributeRaw(aws.GenerateRequiredProviderTokens())
	rootBody.AppendNewline()

	rootBody.AppendBlock(aws.GenerateProviderBlockWithVar())
	rootBody.AppendNewline()

	return string(f.Bytes())
}

func (s *StackHCLService) generateVariablesTf(request types.StackTerraformRequest) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	variables := []types.TerraformVariable{
		{Name: aws.RegionVariable, Description: "AWS Region", Type: "string", Default: request.Region},
		{Name: StackNameVariable, Description: "Name of the CloudFormation stack", Type: "string", Default: request.StackName},
	}
	for _, p := range request.Parameters {
		variables = append(variables, p.Variable)
	}

	for _, v := range variables {
		variableBody := rootBody.AppendNewBlock("variable", []string{v.Name}).Body()
		variableBody.SetAttributeRaw("type", utils.TokensForResourceReference(v.Type))
		if v.Description != "" {
			variableBody.SetAttributeValue("description", cty.StringVal(v.Description))
		}
		if v.Default != "" {
			variableBody.SetAttributeValue("default", cty.StringVal(v.Default))
		}
		if v.Sensitive {
			variableBody.SetAttributeValue("sensitive", cty.BoolVal(true))
		}
		rootBody.AppendNewline()
	}

	return string(f.Bytes())
}

func (s *StackHCLService) generateOutputsTf(request types.StackTerraformRequest) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	for _, output := range request.Outputs {
		outputBody := rootBody.AppendNewBlock("output", []string{output.Name}).Body()
		if output.Description != "" {
			outputBody.SetAttributeValue("description", cty.StringVal(output.Description))
		}
		outputBody.SetAttributeRaw("value", aws.StackOutputReference(request.ResourceName, output.StackOutput))
		rootBody.AppendNewline()
	}

	return string(f.Bytes())
}
