package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

func TestShouldSelectNetworks(t *testing.T) {
	tests := []struct {
		name     string
		explicit bool
		cfg      *config.RuntimeConfig
		terminal bool
		expected bool
	}{
		{name: "no network in a terminal", cfg: &config.RuntimeConfig{}, terminal: true, expected: true},
		{name: "no network without a terminal", cfg: &config.RuntimeConfig{}, terminal: false, expected: false},
		{name: "network given", cfg: &config.RuntimeConfig{Networks: []string{"bsc"}}, terminal: true, expected: false},
		{name: "non-interactive", cfg: &config.RuntimeConfig{NonInteractive: true}, terminal: true, expected: false},
		{name: "json output", cfg: &config.RuntimeConfig{JSON: true}, terminal: true, expected: false},
		{name: "explicit select", explicit: true, cfg: &config.RuntimeConfig{Networks: []string{"bsc"}}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldSelectNetworks(tt.explicit, tt.cfg, tt.terminal))
		})
	}
}
