package aws

import (
	"github.com/asgkit/asgkit/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

const CloudFormationStackResource = "aws_cloudformation_stack"

// GenerateCloudFormationStackResource creates an aws_cloudformation_stack resource that reads its
// template from a file next to the module. parameters maps stack parameter names to Terraform variables.
func GenerateCloudFormationStackResource(resourceName, stackNameVariable, templateFile string, parameters map[string]string) *hclwrite.Block {
	stackBlock := hclwrite.NewBlock("resource", []string{CloudFormationStackResource, resourceName})
	stackBody := stackBlock.Body()

	stackBody.SetAttributeRaw("name", utils.TokensForVarReference(stackNameVariable))
	stackBody.SetAttributeRaw("template_body", utils.TokensForFunctionCall(
		"file",
		utils.TokensForStringTemplate("${path.module}/"+templateFile),
	))

	if len(parameters) > 0 {
		entries := make(map[string]hclwrite.Tokens, len(parameters))
		for stackParameter, variable := range parameters {
			entries[stackParameter] = utils.TokensForVarReference(variable)
		}
		stackBody.SetAttributeRaw("parameters", utils.TokensForMap(entries))
	}

	return stackBlock
}

// StackOutputReference is the expression reading one output of a stack resource.
func StackOutputReference(resourceName, output string) hclwrite.Tokens {
	return utils.TokensForIndex(CloudFormationStackResource+"."+resourceName+".outputs", output)
}
