package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QubeSwap/sgn-v2-contracts/internal/app"
	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		contractName    string
		constructorArgs string
	)

	cmd := &cobra.Command{
		Use:   "verify <address>",
		Short: "Verify a deployed contract on the block explorer",
		Long: `Submit the source of a deployed contract to the network's block explorer
and wait for the result. When the address has a deployment record, the
contract name is taken from it and the record is updated.

An explorer rejection is reported as a warning and does not fail the command.`,
		Example: `  qubedeploy verify 0x5FbDB2315678afecb367f032d93F642f64180aa3 --network bsc
  qubedeploy verify 0x5FbDB... -n polygon --contract QubeBridge --constructor-args 0x000...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			defer stopProgress(cmd)

			network, err := verifyNetwork(cmd, app)
			if err != nil {
				return err
			}

			result, err := app.VerifyDeployment.Run(cmd.Context(), usecase.VerifyDeploymentParams{
				Network:         network,
				Address:         args[0],
				ContractName:    contractName,
				ConstructorArgs: constructorArgs,
			})
			stopProgress(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.NewJSONRenderer[*usecase.VerifyDeploymentResult](cmd.OutOrStdout()).Render(result)
			}
			return render.NewVerifyRenderer(cmd.OutOrStdout()).RenderVerifyResult(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Contract name or path:Name (required without a deployment record)")
	cmd.Flags().StringVar(&constructorArgs, "constructor-args", "", "ABI-encoded constructor arguments as 0x-prefixed hex")

	return cmd
}

// verifyNetwork picks the single network verify runs against. Without
// --network the operator is asked, or the default network is used.
func verifyNetwork(cmd *cobra.Command, app *app.App) (string, error) {
	switch len(app.Config.Networks) {
	case 0:
	case 1:
		return app.Config.Networks[0], nil
	default:
		return "", fmt.Errorf("verify runs against one network, got %d", len(app.Config.Networks))
	}

	if app.Config.NonInteractive || app.Config.JSON {
		return app.Config.DefaultNetwork, nil
	}
	return app.Selector.SelectNetwork(cmd.Context(), app.Config.NetworkTable.Names(), "Network the contract is deployed on")
}
