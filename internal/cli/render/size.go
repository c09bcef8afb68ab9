package render

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// SizeRenderer renders contract code sizes
type SizeRenderer struct {
	out io.Writer
}

// NewSizeRenderer creates a new size renderer
func NewSizeRenderer(out io.Writer) *SizeRenderer {
	return &SizeRenderer{out: out}
}

// RenderSizes prints deployed and initcode sizes in KiB. Contracts above the
// EIP-170 or EIP-3860 limit are highlighted.
func (r *SizeRenderer) RenderSizes(result *usecase.SizeContractsResult) error {
	if len(result.Contracts) == 0 {
		fmt.Fprintln(r.out, "No compiled contracts found")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"Contract", "Deployed (KiB)", "Initcode (KiB)"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, c := range result.Contracts {
		deployed := kib(c.DeployedSize)
		initcode := kib(c.InitcodeSize)
		name := c.Name
		if c.DeployedSize > usecase.MaxDeployedSize {
			deployed = overLimitStyle.Sprint(deployed)
		}
		if c.InitcodeSize > usecase.MaxInitcodeSize {
			initcode = overLimitStyle.Sprint(initcode)
		}
		if c.OverLimit() {
			name = overLimitStyle.Sprint(name)
		}
		t.AppendRow(table.Row{name, deployed, initcode})
	}
	fmt.Fprintln(r.out, t.Render())

	if result.OverLimit > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d contract(s) exceed the size limit of %s deployed / %s initcode",
			result.OverLimit,
			humanize.IBytes(usecase.MaxDeployedSize),
			humanize.IBytes(usecase.MaxInitcodeSize),
		)))
	}
	return nil
}

func kib(size int) string {
	return fmt.Sprintf("%.3f", float64(size)/1024)
}
