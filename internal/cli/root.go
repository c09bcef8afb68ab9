package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/progress"
	"github.com/QubeSwap/sgn-v2-contracts/internal/app"
	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/config"
	domainconfig "github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// sinkKey is the context key for the progress sink
	sinkKey contextKey = "sink"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qubedeploy",
		Short: "Multi-network deployment tool for the QubeBridge contracts",
		Long: `qubedeploy deploys the QubeBridge contracts from compiled Hardhat artifacts
to any configured network, records every deployment and submits the source
for verification on the network's block explorer.

Networks are defined by deploy.toml and the <NETWORK>_ENDPOINT and
<NETWORK>_PRIVATE_KEY environment variables. Setting KMS_KEY_ID switches
mainnet signing to AWS KMS.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipsApp(cmd.Name()) {
				return nil
			}

			projectRoot, _ := cmd.Flags().GetString("project-root")
			if projectRoot == "" {
				var err error
				projectRoot, err = config.FindProjectRoot()
				if err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot, cmd.Flags())

			interactive := !v.GetBool("non_interactive") && !v.GetBool("json") && !isNonInteractive()
			sink := progress.NewSpinnerSink(cmd.ErrOrStderr(), interactive)

			// Initialize app with DI
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			if isNonInteractive() {
				appInstance.Config.NonInteractive = true
			}

			if shouldShowDefaultsNotice(cmd.Name(), appInstance.Config) {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(
					"No deploy.toml found; using the built-in network table"))
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, sinkKey, sink)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringSliceP("network", "n", nil, "Network(s) to use (e.g. bsc, polygon); defaults to the configured default network")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall command timeout (default 30m)")
	rootCmd.PersistentFlags().String("project-root", "", "Project directory (defaults to the nearest directory with deploy.toml)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "main"
	rootCmd.AddCommand(verifyCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	sizeCmd := NewSizeCmd()
	sizeCmd.GroupID = "main"
	rootCmd.AddCommand(sizeCmd)

	// Management commands
	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipsApp reports whether a command runs without project configuration
func skipsApp(name string) bool {
	switch name {
	case "version", "help", "completion", "__complete":
		return true
	}
	return false
}

// shouldShowDefaultsNotice reports whether to tell the operator that no
// project file was found. Machine-readable output is left untouched.
func shouldShowDefaultsNotice(cmdName string, cfg *domainconfig.RuntimeConfig) bool {
	if skipsApp(cmdName) || cmdName == "config" {
		return false
	}
	if cfg == nil || cfg.JSON {
		return false
	}
	return cfg.ConfigSource == "defaults"
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// stopProgress halts the spinner before results are printed
func stopProgress(cmd *cobra.Command) {
	if sink, ok := cmd.Context().Value(sinkKey).(*progress.SpinnerSink); ok {
		sink.Stop()
	}
}

// isNonInteractive checks if the environment is non-interactive
func isNonInteractive() bool {
	return os.Getenv("CI") == "true" || os.Getenv("NO_COLOR") != ""
}
