package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/asgkit/asgkit/cmd/create_template"
	"github.com/asgkit/asgkit/cmd/find_launch_configs"
	"github.com/asgkit/asgkit/cmd/version"
	"github.com/asgkit/asgkit/internal/build_info"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "asgkit.log"

var RootCmd = &cobra.Command{
	Use:   "asgkit",
	Short: "A CLI tool for building Auto Scaling Group CloudFormation stacks",
	Long: "Assemble CloudFormation templates for Auto Scaling Groups with optional load balancing, DNS, " +
		"scaling policies and alarms, and search the launch configurations they run",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Everything but command output goes to stderr so templates can be piped.
		if build_info.Version == build_info.DefaultDevVersion {
			fmt.Fprintf(os.Stderr, "\n%s\n%s\n%s\n\n",
				color.RedString("┌──────────────────────────────────────────────┐"),
				color.RedString("│ ⚠️  WARNING: This is a development build      │"),
				color.RedString("└──────────────────────────────────────────────┘"))
		}

		fmt.Fprintf(os.Stderr, "%s %s %s %s\n",
			color.CyanString("Executing asgkit with build"),
			color.GreenString("version=%s", build_info.Version),
			color.YellowString("commit=%s", build_info.Commit),
			color.BlueString("date=%s", build_info.Date))

		if err := checkWritePermissions(); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", color.RedString("Error: %v", err))
			os.Exit(1)
		}
	},
}

func init() {
	cobra.EnableTraverseRunHooks = true

	lumberjackLogger := &lumberjack.Logger{
		Filename: logFileName,
		MaxSize:  25,
		Compress: true,
	}
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}
	handler := NewPrettyHandler(io.MultiWriter(lumberjackLogger, os.Stderr), opts)
	slog.SetDefault(slog.New(handler))

	RootCmd.AddCommand(
		create_template.NewCreateTemplateCmd(),
		find_launch_configs.NewFindLaunchConfigsCmd(),
		version.NewVersionCmd(),
	)
}

type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PrettyHandler writes one "date level message key=value..." line per record.
type PrettyHandler struct {
	slog.Handler
	l *log.Logger
}

func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	time := r.Time.Format("2006/01/02 15:04:05")

	values := []string{}
	r.Attrs(func(a slog.Attr) bool {
		values = append(values, fmt.Sprintf("%s=%v", a.Key, a.Value.Any()))
		return true
	})

	line := fmt.Sprintf("%s %s %s", time, r.Level.String(), r.Message)
	if len(values) > 0 {
		line += " " + strings.Join(values, " ")
	}
	h.l.Print(line)

	return nil
}

func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{
		Handler: slog.NewTextHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}
}

func checkWritePermissions() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	testFile, err := os.CreateTemp(cwd, ".asgkit-write-test-*")
	if err != nil {
		return fmt.Errorf("current working directory '%s' is not writable, %s cannot be created", cwd, logFileName)
	}

	defer os.Remove(testFile.Name())
	defer testFile.Close()

	return nil
}
