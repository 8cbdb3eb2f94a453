package create_template

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/asgkit/asgkit/internal/types"
	"github.com/asgkit/asgkit/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configPath   string
	format       string
	outputDir    string
	terraform    bool
	region       string
	summary      bool
	s3Uri        string
	checkMetrics bool
)

func NewCreateTemplateCmd() *cobra.Command {
	createTemplateCmd := &cobra.Command{
		Use:   "create-template",
		Short: "Create a CloudFormation template for an Auto Scaling Group",
		Long: "Assemble a CloudFormation template for an Auto Scaling Group, with an optional Elastic Load Balancer, " +
			"Route 53 record, scaling policies and CloudWatch alarms, from a YAML, JSON or HCL stack descriptor",
		Example: `  asgkit create-template --config stack.yaml
  asgkit create-template --config stack.hcl --format yaml --output-dir -
  asgkit create-template --config stack.yaml --terraform --region eu-west-1 --summary`,
		SilenceErrors: true,
		PreRunE:       preRunCreateTemplate,
		RunE:          runCreateTemplate,
	}

	groups := map[*pflag.FlagSet]string{}

	requiredFlags := pflag.NewFlagSet("required", pflag.ExitOnError)
	requiredFlags.SortFlags = false
	requiredFlags.StringVar(&configPath, "config", "", "Path to the stack descriptor (.yaml, .yml, .json or .hcl)")
	createTemplateCmd.Flags().AddFlagSet(requiredFlags)
	groups[requiredFlags] = "Required Flags"

	outputFlags := pflag.NewFlagSet("output", pflag.ExitOnError)
	outputFlags.SortFlags = false
	outputFlags.StringVar(&format, "format", string(types.OutputFormatJSON), "Template format: json or yaml")
	outputFlags.StringVar(&outputDir, "output-dir", ".", "Directory the template is written to, '-' writes to stdout")
	outputFlags.BoolVar(&terraform, "terraform", false, "Also write Terraform files wrapping the template in an aws_cloudformation_stack")
	outputFlags.BoolVar(&summary, "summary", false, "Print a summary of the resources and outputs in the template")
	createTemplateCmd.Flags().AddFlagSet(outputFlags)
	groups[outputFlags] = "Output Flags"

	awsFlags := pflag.NewFlagSet("aws", pflag.ExitOnError)
	awsFlags.SortFlags = false
	awsFlags.StringVar(&region, "region", "", "AWS region used for the Terraform provider, metric checks and uploads")
	awsFlags.StringVar(&s3Uri, "s3-uri", "", "Upload the template to this location (e.g. s3://my-bucket/templates)")
	awsFlags.BoolVar(&checkMetrics, "check-metrics", false, "Check that every alarm metric has been published in the region")
	createTemplateCmd.Flags().AddFlagSet(awsFlags)
	groups[awsFlags] = "AWS Flags"

	createTemplateCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{requiredFlags, outputFlags, awsFlags}
		for _, fs := range flagOrder {
			if usage := fs.FlagUsages(); usage != "" {
				fmt.Printf("%s:\n%s\n", groups[fs], usage)
			}
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	createTemplateCmd.MarkFlagRequired("config")

	return createTemplateCmd
}

func preRunCreateTemplate(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runCreateTemplate(cmd *cobra.Command, args []string) error {
	opts, err := parseCreateTemplateOpts()
	if err != nil {
		return fmt.Errorf("failed to parse create template opts: %v", err)
	}

	templateGenerator := NewTemplateGenerator(*opts, cmd.OutOrStdout())
	if err := templateGenerator.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

func parseCreateTemplateOpts() (*TemplateGeneratorOpts, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if err := utils.RequireOneOf("format", format, []string{string(types.OutputFormatJSON), string(types.OutputFormatYAML)}); err != nil {
		return nil, err
	}

	if terraform && outputDir == StdoutOutputDir {
		return nil, fmt.Errorf("--terraform needs a directory to write to, it cannot be combined with --output-dir %s", StdoutOutputDir)
	}
	if (checkMetrics || s3Uri != "") && region == "" {
		slog.Warn("⚠️ no --region given, using the region from the AWS configuration")
	}

	opts := TemplateGeneratorOpts{
		ConfigPath:   configPath,
		Format:       types.OutputFormat(format),
		OutputDir:    outputDir,
		Terraform:    terraform,
		Region:       region,
		Summary:      summary,
		S3URI:        s3Uri,
		CheckMetrics: checkMetrics,
	}

	return &opts, nil
}
