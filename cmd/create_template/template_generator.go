package create_template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/asgkit/asgkit/internal/client"
	"github.com/asgkit/asgkit/internal/services/cfn"
	"github.com/asgkit/asgkit/internal/services/emitter"
	"github.com/asgkit/asgkit/internal/services/hcl"
	"github.com/asgkit/asgkit/internal/services/metrics"
	"github.com/asgkit/asgkit/internal/services/s3"
	"github.com/asgkit/asgkit/internal/types"
	"github.com/asgkit/asgkit/internal/utils"
)

const (
	StdoutOutputDir  = "-"
	TemplateFileName = "template"
)

type TemplateGeneratorOpts struct {
	ConfigPath   string
	Format       types.OutputFormat
	OutputDir    string
	Terraform    bool
	Region       string
	Summary      bool
	S3URI        string
	CheckMetrics bool
}

type MetricChecker interface {
	CheckAlarmMetrics(ctx context.Context, alarms []types.AlarmSpec) ([]metrics.MetricCheck, error)
}

type TemplateUploader interface {
	UploadTemplate(ctx context.Context, s3Uri, fileName, contentType string, body []byte) (string, error)
}

type TemplateGenerator struct {
	opts       TemplateGeneratorOpts
	out        io.Writer
	assembler  *cfn.Assembler
	hclService *hcl.StackHCLService

	newMetricChecker func(region string) (MetricChecker, error)
	newUploader      func(region string) (TemplateUploader, error)
}

func NewTemplateGenerator(opts TemplateGeneratorOpts, out io.Writer) *TemplateGenerator {
	return &TemplateGenerator{
		opts:             opts,
		out:              out,
		assembler:        cfn.NewAssembler(),
		hclService:       hcl.NewStackHCLService(),
		newMetricChecker: newCloudWatchMetricChecker,
		newUploader:      newS3Uploader,
	}
}

func (tg *TemplateGenerator) Run(ctx context.Context) error {
	slog.Info("🏁 generating template", "config", tg.opts.ConfigPath, "format", tg.opts.Format)

	descriptor, errs := types.NewStackDescriptorFromFile(tg.opts.ConfigPath)
	if len(errs) > 0 {
		return fmt.Errorf("invalid stack descriptor %s: %w", tg.opts.ConfigPath, errors.Join(errs...))
	}

	stack, err := tg.assembler.Assemble(*descriptor)
	if err != nil {
		return err
	}

	body, err := emitter.Emit(stack, tg.opts.Format)
	if err != nil {
		return err
	}

	templateFile := TemplateFileName + tg.opts.Format.Extension()
	if err := tg.writeTemplate(templateFile, body); err != nil {
		return err
	}

	if tg.opts.Terraform {
		request := tg.hclService.BuildStackTerraformRequest(stack, tg.opts.Region, templateFile)
		terraformFiles, err := tg.hclService.GenerateStackFiles(request)
		if err != nil {
			return fmt.Errorf("failed to generate Terraform files: %w", err)
		}
		if err := tg.writeTerraformFiles(terraformFiles); err != nil {
			return fmt.Errorf("failed to write Terraform files: %w", err)
		}
	}

	var checks []metrics.MetricCheck
	if tg.opts.CheckMetrics && len(descriptor.Alarms) > 0 {
		checker, err := tg.newMetricChecker(tg.opts.Region)
		if err != nil {
			return err
		}
		if checks, err = checker.CheckAlarmMetrics(ctx, descriptor.Alarms); err != nil {
			return err
		}
	}

	if tg.opts.S3URI != "" {
		uploader, err := tg.newUploader(tg.opts.Region)
		if err != nil {
			return err
		}
		if _, err := uploader.UploadTemplate(ctx, tg.opts.S3URI, templateFile, contentType(tg.opts.Format), body); err != nil {
			return err
		}
	}

	if tg.opts.Summary {
		if err := BuildStackSummary(stack, checks).Print(tg.summaryWriter()); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	slog.Info("✅ template generated", "stack", stack.Name, "resources", len(stack.Graph.Nodes()), "outputs", len(stack.Outputs))

	return nil
}

func (tg *TemplateGenerator) writeTemplate(templateFile string, body []byte) error {
	if tg.opts.OutputDir == StdoutOutputDir {
		_, err := tg.out.Write(body)
		return err
	}

	_, err := utils.WriteOutputFile(tg.opts.OutputDir, templateFile, body)
	return err
}

func (tg *TemplateGenerator) writeTerraformFiles(files types.TerraformFiles) error {
	terraformFiles := []struct {
		name    string
		content string
	}{
		{"main.tf", files.MainTf},
		{"providers.tf", files.ProvidersTf},
		{"variables.tf", files.VariablesTf},
		{"outputs.tf", files.OutputsTf},
	}

	for _, f := range terraformFiles {
		if f.content == "" {
			continue
		}
		if _, err := utils.WriteOutputFile(tg.opts.OutputDir, f.name, []byte(f.content)); err != nil {
			return err
		}
	}

	return nil
}

// summaryWriter keeps the summary out of the template stream when the template goes to stdout.
func (tg *TemplateGenerator) summaryWriter() io.Writer {
	if tg.opts.OutputDir == StdoutOutputDir {
		return os.Stderr
	}
	return tg.out
}

func contentType(format types.OutputFormat) string {
	if format == types.OutputFormatYAML {
		return "application/x-yaml"
	}
	return "application/json"
}

func newCloudWatchMetricChecker(region string) (MetricChecker, error) {
	cloudWatchClient, err := client.NewCloudWatchClient(region)
	if err != nil {
		return nil, err
	}
	return metrics.NewMetricService(cloudWatchClient), nil
}

func newS3Uploader(region string) (TemplateUploader, error) {
	s3Client, err := client.NewS3Client(region)
	if err != nil {
		return nil, err
	}
	return s3.NewS3Service(s3Client), nil
}
