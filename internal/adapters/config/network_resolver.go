package config

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

const maxSuggestions = 3

// NetworkResolver answers network lookups from the resolved network table
type NetworkResolver struct {
	table *config.NetworkTable
}

// NewNetworkResolver creates a resolver over the runtime network table
func NewNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	table := cfg.NetworkTable
	if table == nil {
		table = config.NewNetworkTable()
	}
	return &NetworkResolver{table: table}
}

// ResolveNetwork returns a copy of the named descriptor. Names match exactly
// first, then ignoring case. Unknown names carry close-match suggestions.
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.NetworkDescriptor, error) {
	if d, ok := r.table.Get(name); ok {
		return &d, nil
	}

	for _, candidate := range r.table.Names() {
		if strings.EqualFold(candidate, name) {
			d, _ := r.table.Get(candidate)
			return &d, nil
		}
	}

	return nil, domain.UnknownNetworkErr{Name: name, Suggestions: r.suggest(name)}
}

// GetNetworks returns the network names in definition order
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	return r.table.Names()
}

func (r *NetworkResolver) suggest(name string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, r.table.Names())
	var out []string
	for i, m := range matches {
		if i == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

var _ usecase.NetworkResolver = (*NetworkResolver)(nil)
