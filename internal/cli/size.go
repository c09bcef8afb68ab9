package cli

import (
	"github.com/spf13/cobra"

	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// NewSizeCmd creates the size command
func NewSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Report compiled contract sizes",
		Long: `Print the deployed and initcode size of every compiled contract and flag
those above the 24 KiB runtime or 48 KiB initcode limit.

Sorting and name display follow [contract_sizer] in deploy.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SizeContracts.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.NewJSONRenderer[*usecase.SizeContractsResult](cmd.OutOrStdout()).Render(result)
			}
			return render.NewSizeRenderer(cmd.OutOrStdout()).RenderSizes(result)
		},
	}
}
