package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// SelectorAdapter handles operator prompts
type SelectorAdapter struct {
	config *config.RuntimeConfig
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg, stdin: os.Stdin, stdout: os.Stdout}
}

// ConfirmDeployment asks before broadcasting to a mainnet. Local and test
// networks, --yes and non-interactive runs never prompt.
func (s *SelectorAdapter) ConfirmDeployment(ctx context.Context, plan usecase.DeploymentPlan) (bool, error) {
	if s.config.AssumeYes || s.config.NonInteractive {
		return true, nil
	}
	if plan.Network == nil || plan.Network.Class != config.NetworkClassMainnet {
		return true, nil
	}

	fmt.Fprintln(s.stdout, describePlan(plan))

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Deploy %s to %s", plan.Contract, plan.Network.Name),
		IsConfirm: true,
		Stdin:     s.stdin,
		Stdout:    s.stdout,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// SelectNetwork lets the operator pick one network with fuzzy search
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string, label string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(networks) == 0 {
		return "", fmt.Errorf("no networks to select from")
	}
	if len(networks) == 1 {
		return networks[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	sel := promptui.Select{
		Label:             label,
		Items:             networks,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearcher(networks),
		Stdin:             s.stdin,
		Stdout:            s.stdout,
	}

	index, _, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return networks[index], nil
}

func describePlan(plan usecase.DeploymentPlan) string {
	warn := color.New(color.FgYellow, color.Bold)
	lines := []string{
		warn.Sprintf("About to deploy to mainnet %q", plan.Network.Name),
		fmt.Sprintf("  chain id: %d", plan.ChainID),
		fmt.Sprintf("  deployer: %s", plan.Deployer.Hex()),
		fmt.Sprintf("  signing:  %s", plan.Network.SigningMethod()),
	}
	if plan.Network.HasGasPrice() {
		lines = append(lines, fmt.Sprintf("  gas price: %s wei", plan.Network.GasPrice))
	}
	return strings.Join(lines, "\n")
}

// fuzzySearcher matches by substring first, then fuzzily
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.DeploymentConfirmer = (*SelectorAdapter)(nil)
