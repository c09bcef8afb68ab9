package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// DeploymentsRenderer renders deployment lists grouped by network
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders one table per network followed by a summary
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := lo.GroupBy(result.Deployments, func(d *models.Deployment) string { return d.Network })
	networks := lo.Keys(groups)
	sort.Strings(networks)

	for i, network := range networks {
		deployments := groups[network]
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		networkHeader.Fprintf(r.out, " %s ", network)
		fmt.Fprintf(r.out, " chain %d\n", deployments[0].ChainID)

		t := newTable()
		t.AppendHeader(table.Row{"Contract", "Address", "Verification", "Deployed"})
		for _, d := range deployments {
			t.AppendRow(table.Row{
				headerStyle.Sprint(d.ContractName),
				addressStyle.Sprint(d.Address),
				verificationLabel(d.Verification.Status),
				faintStyle.Sprint(deployedAt(d)),
			})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%d deployment(s) on %d network(s), %d verified\n",
		result.Summary.Total, len(result.Summary.ByNetwork), result.Summary.Verified)
	return nil
}

func deployedAt(d *models.Deployment) string {
	if d.CreatedAt.IsZero() {
		return "-"
	}
	return humanize.Time(d.CreatedAt)
}
