package utils

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RequireOneOf checks a flag value against its allowed values.
func RequireOneOf(flagName, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid value %q for --%s, expected one of: %s", value, flagName, strings.Join(allowed, ", "))
}

// sets flag values from corresponding environment variables if flags weren't explicitly provided
func BindEnvToFlags(cmd *cobra.Command) error {
	v := viper.New()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// e.g., "output-dir" -> "OUTPUT_DIR"
		envVarName := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		if err := v.BindEnv(f.Name, envVarName); err != nil {
			bindErr = err
			return
		}

		// Command-line values win over the environment.
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				bindErr = fmt.Errorf("invalid value for %s from environment variable %s: %w", f.Name, envVarName, err)
			}
		}
	})

	return bindErr
}
