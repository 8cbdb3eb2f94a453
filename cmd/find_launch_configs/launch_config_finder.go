package find_launch_configs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/asgkit/asgkit/internal/client"
	"github.com/asgkit/asgkit/internal/services/autoscaling"
	"github.com/asgkit/asgkit/internal/services/markdown"
	"github.com/asgkit/asgkit/internal/types"
	"github.com/goccy/go-yaml"
)

type LaunchConfigFinderOpts struct {
	Region            string
	Query             types.LaunchConfigQuery
	Output            types.OutputFormat
	RequestsPerSecond float64
	BurstSize         int
}

type LaunchConfigSearcher interface {
	FindLaunchConfigurations(ctx context.Context, query types.LaunchConfigQuery) ([]types.LaunchConfigRecord, error)
}

type LaunchConfigFinder struct {
	region   string
	query    types.LaunchConfigQuery
	output   types.OutputFormat
	searcher LaunchConfigSearcher
	out      io.Writer
}

func NewLaunchConfigFinder(opts LaunchConfigFinderOpts, searcher LaunchConfigSearcher, out io.Writer) *LaunchConfigFinder {
	return &LaunchConfigFinder{
		region:   opts.Region,
		query:    opts.Query,
		output:   opts.Output,
		searcher: searcher,
		out:      out,
	}
}

func newAutoScalingSearcher(c *client.RateLimitedAutoScalingClient) LaunchConfigSearcher {
	return autoscaling.NewAutoScalingService(c)
}

func (f *LaunchConfigFinder) Run(ctx context.Context) error {
	slog.Info("🚀 searching launch configurations", "region", f.region, "name_regex", f.query.NameRegex)

	records, err := f.searcher.FindLaunchConfigurations(ctx, f.query)
	if err != nil {
		return err
	}

	slog.Info("✅ search complete", "region", f.region, "matches", len(records))

	return f.render(records)
}

func (f *LaunchConfigFinder) render(records []types.LaunchConfigRecord) error {
	if records == nil {
		records = []types.LaunchConfigRecord{}
	}

	switch f.output {
	case types.OutputFormatYAML:
		data, err := yaml.MarshalWithOptions(records, yaml.Indent(2), yaml.IndentSequence(true))
		if err != nil {
			return fmt.Errorf("failed to marshal launch configurations: %v", err)
		}
		_, err = f.out.Write(data)
		return err
	case types.OutputFormatMarkdown:
		return launchConfigTable(f.region, records).Print(f.out)
	default:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal launch configurations: %v", err)
		}
		_, err = f.out.Write(append(data, '\n'))
		return err
	}
}

func launchConfigTable(region string, records []types.LaunchConfigRecord) *markdown.Markdown {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Name, r.InstanceType, r.ImageID, r.ARN})
	}

	md := markdown.New().AddHeading(fmt.Sprintf("Launch configurations in %s", region), 1)
	if len(rows) == 0 {
		return md.AddParagraph("No launch configurations matched.")
	}
	return md.AddTable([]string{"Name", "Instance Type", "Image", "ARN"}, rows)
}
