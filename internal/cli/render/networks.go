package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// networkJSON is the --json form of a network status
type networkJSON struct {
	Name            string `json:"name"`
	Default         bool   `json:"default,omitempty"`
	Endpoint        string `json:"endpoint"`
	Class           string `json:"class"`
	Signing         string `json:"signing"`
	GasPrice        string `json:"gasPrice,omitempty"`
	ExpectedChainID uint64 `json:"expectedChainId,omitempty"`
	LiveChainID     uint64 `json:"liveChainId,omitempty"`
	Error           string `json:"error,omitempty"`
}

// RenderJSON writes the network list as JSON
func (r *NetworksRenderer) RenderJSON(result *usecase.ListNetworksResult) error {
	out := make([]networkJSON, 0, len(result.Networks))
	for _, n := range result.Networks {
		nj := networkJSON{
			Name:            n.Name,
			Default:         n.Name == result.DefaultNetwork,
			Endpoint:        n.Endpoint,
			Class:           string(n.Class),
			Signing:         string(n.SigningMethod),
			ExpectedChainID: n.ExpectedChainID,
			LiveChainID:     n.LiveChainID,
		}
		if n.GasPrice != nil {
			nj.GasPrice = n.GasPrice.String()
		}
		if n.Error != nil {
			nj.Error = n.Error.Error()
		}
		out = append(out, nj)
	}
	return NewJSONRenderer[[]networkJSON](r.out).Render(out)
}

// RenderNetworksList renders the network table. The status column is only
// shown when the networks were dialled.
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult, checked bool) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	header := table.Row{"", "Network", "Class", "Chain", "Signing", "Gas Price", "Endpoint"}
	if checked {
		header = append(header, "Status")
	}
	t.AppendHeader(header)

	for _, n := range result.Networks {
		marker := ""
		if n.Name == result.DefaultNetwork {
			marker = defaultMarker.Sprint("*")
		}
		chain := "-"
		if n.ExpectedChainID != 0 {
			chain = fmt.Sprintf("%d", n.ExpectedChainID)
		}
		row := table.Row{
			marker,
			headerStyle.Sprint(n.Name),
			string(n.Class),
			chain,
			string(n.SigningMethod),
			formatGwei(n.GasPrice),
			faintStyle.Sprint(n.Endpoint),
		}
		if checked {
			row = append(row, networkStatus(n))
		}
		t.AppendRow(row)
	}
	fmt.Fprintln(r.out, t.Render())

	for _, name := range result.Duplicates {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("network %s is defined more than once; the last definition is used", name)))
	}
	return nil
}

func networkStatus(n usecase.NetworkStatus) string {
	switch {
	case n.Error != nil:
		return failedStyle.Sprintf("✗ %v", n.Error)
	case n.Mismatch():
		return skippedStyle.Sprintf("⚠ chain %d", n.LiveChainID)
	default:
		return verifiedStyle.Sprintf("✓ chain %d", n.LiveChainID)
	}
}
