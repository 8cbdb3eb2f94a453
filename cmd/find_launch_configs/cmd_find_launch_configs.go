package find_launch_configs

import (
	"fmt"
	"strings"

	"github.com/asgkit/asgkit/internal/client"
	"github.com/asgkit/asgkit/internal/types"
	"github.com/asgkit/asgkit/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	region            string
	nameRegex         string
	sortRecords       bool
	sortOrder         string
	sortStart         string
	sortEnd           string
	output            string
	requestsPerSecond float64
	burstSize         int
)

func NewFindLaunchConfigsCmd() *cobra.Command {
	findCmd := &cobra.Command{
		Use:   "find-launch-configs",
		Short: "Find Auto Scaling launch configurations by name",
		Long: "List the launch configurations of a region, keep those whose name matches a regular expression " +
			"(matched from the start of the name), optionally sort them by name and slice the result",
		Example: `  asgkit find-launch-configs --region eu-west-1 --name-regex 'app-.*'
  asgkit find-launch-configs --region eu-west-1 --name-regex app --sort --sort-order descending --sort-end 1
  asgkit find-launch-configs --region eu-west-1 --output markdown`,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE:       preRunFindLaunchConfigs,
		RunE:          runFindLaunchConfigs,
	}

	groups := map[*pflag.FlagSet]string{}

	requiredFlags := pflag.NewFlagSet("required", pflag.ExitOnError)
	requiredFlags.SortFlags = false
	requiredFlags.StringVar(&region, "region", "", "The AWS region to search")
	findCmd.Flags().AddFlagSet(requiredFlags)
	groups[requiredFlags] = "Required Flags"

	searchFlags := pflag.NewFlagSet("search", pflag.ExitOnError)
	searchFlags.SortFlags = false
	searchFlags.StringVar(&nameRegex, "name-regex", "", "Regular expression matched against the start of each name")
	searchFlags.BoolVar(&sortRecords, "sort", false, "Sort the matches by name")
	searchFlags.StringVar(&sortOrder, "sort-order", string(types.SortOrderAscending), "Sort order: ascending or descending")
	searchFlags.StringVar(&sortStart, "sort-start", "", "First index of the result slice, negative counts from the end")
	searchFlags.StringVar(&sortEnd, "sort-end", "", "End index (exclusive) of the result slice, negative counts from the end")
	findCmd.Flags().AddFlagSet(searchFlags)
	groups[searchFlags] = "Search Flags"

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&output, "output", string(types.OutputFormatJSON), "Output format: json, yaml or markdown")
	optionalFlags.Float64Var(&requestsPerSecond, "requests-per-second", client.DefaultAutoScalingRequestsPerSecond, "Maximum Auto Scaling API requests per second")
	optionalFlags.IntVar(&burstSize, "burst-size", client.DefaultAutoScalingBurstSize, "Maximum burst of Auto Scaling API requests")
	findCmd.Flags().AddFlagSet(optionalFlags)
	groups[optionalFlags] = "Optional Flags"

	findCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{requiredFlags, searchFlags, optionalFlags}
		for _, fs := range flagOrder {
			if usage := fs.FlagUsages(); usage != "" {
				fmt.Printf("%s:\n%s\n", groups[fs], usage)
			}
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	findCmd.MarkFlagRequired("region")

	return findCmd
}

func preRunFindLaunchConfigs(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runFindLaunchConfigs(cmd *cobra.Command, args []string) error {
	opts, err := parseFindLaunchConfigsOpts()
	if err != nil {
		return fmt.Errorf("failed to parse find launch configs opts: %v", err)
	}

	autoScalingClient, err := client.NewAutoScalingClient(opts.Region, opts.RequestsPerSecond, opts.BurstSize)
	if err != nil {
		return err
	}

	finder := NewLaunchConfigFinder(*opts, newAutoScalingSearcher(autoScalingClient), cmd.OutOrStdout())
	if err := finder.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to find launch configurations: %w", err)
	}

	return nil
}

func parseFindLaunchConfigsOpts() (*LaunchConfigFinderOpts, error) {
	output = strings.ToLower(strings.TrimSpace(output))
	if err := utils.RequireOneOf("output", output, []string{
		string(types.OutputFormatJSON),
		string(types.OutputFormatYAML),
		string(types.OutputFormatMarkdown),
	}); err != nil {
		return nil, err
	}

	sortOrder = strings.ToLower(strings.TrimSpace(sortOrder))
	if err := utils.RequireOneOf("sort-order", sortOrder, []string{
		string(types.SortOrderAscending),
		string(types.SortOrderDescending),
	}); err != nil {
		return nil, err
	}

	if requestsPerSecond <= 0 || burstSize < 1 {
		return nil, fmt.Errorf("--requests-per-second must be positive and --burst-size at least 1")
	}

	return &LaunchConfigFinderOpts{
		Region: region,
		Query: types.LaunchConfigQuery{
			NameRegex: nameRegex,
			Sort:      sortRecords,
			SortOrder: types.SortOrder(sortOrder),
			SortStart: sortStart,
			SortEnd:   sortEnd,
		},
		Output:            types.OutputFormat(output),
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
	}, nil
}
