package cli

import (
	"github.com/spf13/cobra"

	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the configured networks",
		Long: `List every network in the network table with its endpoint, signing method
and gas price override. The default network is marked with *.

With --check each endpoint is dialled and the chain it serves is compared
with the expected chain ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Check: check})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout())
			if app.Config.JSON {
				return renderer.RenderJSON(result)
			}
			return renderer.RenderNetworksList(result, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Dial each network and report its chain ID")

	return cmd
}
