package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/motomind/motomind/internal/config"
	"github.com/motomind/motomind/internal/logging"
	"github.com/motomind/motomind/internal/ui/styles"
	"github.com/motomind/motomind/internal/util"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// Loaded once per invocation in the persistent pre-run.
var (
	appConfig = config.DefaultConfig()
	logger    = zap.NewNop()
)

var rootCmd = newRootCmd()

func Execute() error {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		// Check if it's a structured MotoError
		var motoErr *util.MotoError
		if errors.As(err, &motoErr) {
			fmt.Fprintln(os.Stderr, motoErr.Format())
		} else {
			// Simple error - still format nicely
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "motomind",
		Short: "Browse, filter and export vehicle maintenance records",
		Long: `motomind shows maintenance events and other tabular data in an
interactive terminal table: sort and filter per column, select rows across
pages, hide columns, switch between table and card layouts, and export the
filtered result as CSV.

Data comes from CSV, JSON or YAML files, or from a PostgreSQL database
(see 'motomind config db.url').`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
		PersistentPreRunE: setup,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().String("config", "", "Config file (default "+util.ConfigPath()+")")

	// Version flag template to show more info
	cmd.SetVersionTemplate(fmt.Sprintf("motomind version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	// Add all subcommands
	cmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newEventsCmd(),
		newViewCmd(),
		newExportCmd(),
		newDiffCmd(),
		newImportCmd(),
		newConfigCmd(),
		newCompletionCmd(),
	)
	return cmd
}

// setup handles the global flags: colors, config file and logger.
func setup(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		styles.SetNoColor(true)
	}

	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return util.NewError("Invalid config file").
			WithContext(configPath(cmd)).
			WithSuggestions("motomind config --list").
			Wrap(err)
	}
	appConfig = cfg

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logging.New(cfg.Log.Level, verbose)
	if err != nil {
		return err
	}
	logger = log
	logger.Debug("config loaded", zap.String("path", configPath(cmd)))
	return nil
}

func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return util.ExpandHome(path)
	}
	return util.ConfigPath()
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for motomind.

To load completions:

Bash:
  $ source <(motomind completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ motomind completion zsh > "${fpath[1]}/_motomind"

Fish:
  $ motomind completion fish | source

PowerShell:
  PS> motomind completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "motomind version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
