package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		selectNetworks bool
		listTasks      bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy contracts to one or more networks",
		Long: `Run the deploy tasks on each selected network in turn.

Every task deploys one contract with the network's signer, records the
deployment under deployments/<network>/ and submits the source to the
network's block explorer. Verification problems are reported as warnings;
any failure before the contract is mined stops the run.

Mainnet deployments ask for confirmation unless --yes or --non-interactive
is given.`,
		Example: `  # Deploy to the default network
  qubedeploy deploy

  # Deploy to two networks, one after the other
  qubedeploy deploy --network bscTest,polygonTest

  # Only run the QubeBridge task and skip verification
  qubedeploy deploy -n bsc --tags QubeBridge --skip-verify

  # Pick the networks from a list (also the default in a terminal
  # when no --network is given)
  qubedeploy deploy --select`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			defer stopProgress(cmd)

			if listTasks {
				tasks, err := app.Tasks.Select(app.Config.Tags)
				if err != nil {
					return err
				}
				for _, task := range tasks {
					line := fmt.Sprintf("%s (%s)", task.Name, task.Contract)
					if len(task.Dependencies) > 0 {
						line += " after " + strings.Join(task.Dependencies, ", ")
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}

			networks := app.Config.Networks
			if selectNetworks && app.Config.NonInteractive {
				return fmt.Errorf("--select needs an interactive terminal")
			}
			if shouldSelectNetworks(selectNetworks, app.Config, stdinIsTerminal()) {
				networks, err = SelectNetworks(app.Config.NetworkTable.Names(), "Select networks to deploy to")
				if err != nil {
					return err
				}
			}

			result, runErr := app.DeployContracts.Run(cmd.Context(), usecase.DeployContractsParams{
				Networks:   networks,
				Tags:       app.Config.Tags,
				SkipVerify: app.Config.SkipVerify,
			})
			stopProgress(cmd)

			if app.Config.JSON {
				if result != nil {
					if err := render.NewJSONRenderer[*usecase.DeployContractsResult](cmd.OutOrStdout()).Render(result); err != nil {
						return err
					}
				}
				return runErr
			}

			if result != nil && (runErr == nil || len(result.Networks) > 0) {
				if err := render.NewDeployRenderer(cmd.OutOrStdout()).RenderDeployResult(result); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringSlice("tags", nil, "Only run deploy tasks with these tags")
	cmd.Flags().Bool("skip-verify", false, "Do not submit sources to the block explorer")
	cmd.Flags().BoolP("yes", "y", false, "Skip the mainnet confirmation prompt")
	cmd.Flags().BoolVar(&selectNetworks, "select", false, "Choose the networks from a list")
	cmd.Flags().BoolVar(&listTasks, "list-tasks", false, "Print the tasks that would run and exit")

	return cmd
}

// shouldSelectNetworks opens the network picker for --select, or when no
// network was given and a person is at the terminal.
func shouldSelectNetworks(explicit bool, cfg *config.RuntimeConfig, terminal bool) bool {
	if explicit {
		return true
	}
	return len(cfg.Networks) == 0 && !cfg.NonInteractive && !cfg.JSON && terminal
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
