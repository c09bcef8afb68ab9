package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var contractName string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the deployment records under the deployments directory, grouped by
network. Without --network every network is listed.`,
		Example: `  # List all deployments
  qubedeploy list

  # List QubeBridge deployments on bsc
  qubedeploy list -n bsc --contract QubeBridge`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{ContractName: contractName}
			switch len(app.Config.Networks) {
			case 0:
			case 1:
				params.Network = app.Config.Networks[0]
			default:
				return fmt.Errorf("list takes at most one network, got %d", len(app.Config.Networks))
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.NewJSONRenderer[*usecase.DeploymentListResult](cmd.OutOrStdout()).Render(result)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")

	return cmd
}
