package cli

import (
	"github.com/spf13/cobra"

	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after deploy.toml, .env files and the environment
have been applied. Private keys and explorer API keys are masked.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}
}

func showConfig(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	if app.Config.JSON {
		return render.NewJSONRenderer[*usecase.ShowConfigResult](cmd.OutOrStdout()).Render(result)
	}
	return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
}
