package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// DeployRenderer renders the outcome of a deploy run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderDeployResult prints one block per network that completed. A run that
// failed part way still shows the networks finished before the failure.
func (r *DeployRenderer) RenderDeployResult(result *usecase.DeployContractsResult) error {
	if result == nil || len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "Nothing was deployed")
		return nil
	}

	for i, nd := range result.Networks {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		networkHeader.Fprintf(r.out, " %s ", nd.Network)
		fmt.Fprintf(r.out, " chain %d  deployer %s\n", nd.ChainID, addressStyle.Sprint(nd.Deployer))

		t := newTable()
		t.AppendHeader(table.Row{"Contract", "Address", "Transaction", "Verification"})
		for _, d := range nd.Deployments {
			t.AppendRow(table.Row{
				headerStyle.Sprint(d.ContractName),
				addressStyle.Sprint(d.Address),
				faintStyle.Sprint(d.TransactionHash),
				verificationLabel(d.Verification.Status),
			})
		}
		fmt.Fprintln(r.out, t.Render())

		for _, d := range nd.Deployments {
			if d.Verification.ExplorerURL != "" {
				fmt.Fprintf(r.out, "  %s %s\n", d.ContractName, faintStyle.Sprint(d.Verification.ExplorerURL))
			}
		}
		for _, w := range nd.Warnings {
			fmt.Fprintln(r.out, FormatWarning(w))
		}
	}

	total := 0
	for _, nd := range result.Networks {
		total += len(nd.Deployments)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %d contract(s) to %d network(s)", total, len(result.Networks))))
	return nil
}
