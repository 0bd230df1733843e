package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motomind/motomind/internal/config"
	"github.com/motomind/motomind/internal/ui/styles"
	"github.com/motomind/motomind/internal/util"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set options",
		Long: `Get and set motomind configuration options.

Examples:
  motomind config table.page_size         # Get value
  motomind config table.page_size 50      # Set value
  motomind config table.mobile_view cards # Set value
  motomind config --list                  # List all config

` + config.GenerateHelpText(),
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.ListKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	listAll, _ := cmd.Flags().GetBool("list")
	out := cmd.OutOrStdout()

	if listAll {
		for _, key := range config.ListKeys() {
			value, _ := appConfig.GetValue(key)
			if key == "db.url" {
				value = util.RedactURL(value)
			}
			fmt.Fprintf(out, "%s=%s\n", key, value)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("usage: motomind config <key> [value]")
	}

	key := strings.ToLower(args[0])

	// Get or set?
	if len(args) == 1 {
		value, ok := appConfig.GetValue(key)
		if !ok {
			return unknownKeyError(key)
		}
		fmt.Fprintln(out, value)
		return nil
	}

	if err := appConfig.SetValue(key, args[1]); err != nil {
		if _, ok := appConfig.GetValue(key); !ok {
			return unknownKeyError(key)
		}
		return util.NewError(fmt.Sprintf("Invalid value for %s", key)).
			WithMessage(err.Error()).
			Wrap(err)
	}

	path := configPath(cmd)
	if err := appConfig.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintln(out, styles.MutedMsg(fmt.Sprintf("%s saved to %s", key, path)))
	return nil
}

func unknownKeyError(key string) error {
	return util.NewError(fmt.Sprintf("Unknown config key: %s", key)).
		WithMessage("Valid keys: " + strings.Join(config.ListKeys(), ", ")).
		WithSuggestions("motomind config --list")
}
