package aws

import (
	"github.com/asgkit/asgkit/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

const (
	ProviderSource  = "hashicorp/aws"
	ProviderVersion = "6.18.0"

	RegionVariable = "aws_region"
)

func GenerateRequiredProviderTokens() (string, hclwrite.Tokens) {
	awsProvider := map[string]hclwrite.Tokens{
		"source":  utils.TokensForStringTemplate(ProviderSource),
		"version": utils.TokensForStringTemplate(ProviderVersion),
	}

	return "aws", utils.TokensForMap(awsProvider)
}

// GenerateProviderBlockWithVar creates a provider "aws" block whose region comes from var.aws_region.
func GenerateProviderBlockWithVar() *hclwrite.Block {
	providerBlock := hclwrite.NewBlock("provider", []string{"aws"})
	providerBlock.Body().SetAttributeRaw("region", utils.TokensForVarReference(RegionVariable))

	return providerBlock
}
