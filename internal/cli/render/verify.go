package render

import (
	"fmt"
	"io"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// RenderVerifyResult renders the result of verifying one contract
func (r *VerifyRenderer) RenderVerifyResult(result *usecase.VerifyDeploymentResult) error {
	fmt.Fprintf(r.out, "%s %s on %s (chain %d)\n",
		headerStyle.Sprint(result.ContractName),
		addressStyle.Sprint(result.Address),
		result.Network,
		result.ChainID,
	)

	switch {
	case result.Warning != nil:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Verification failed: %v", result.Warning)))
	case result.Verification.Status == models.VerificationStatusVerified:
		fmt.Fprintln(r.out, FormatSuccess("Contract source verified"))
	default:
		fmt.Fprintf(r.out, "  Status: %s\n", verificationLabel(result.Verification.Status))
	}

	if result.Verification.GUID != "" {
		fmt.Fprintf(r.out, "  GUID:     %s\n", faintStyle.Sprint(result.Verification.GUID))
	}
	if result.Verification.ExplorerURL != "" {
		fmt.Fprintf(r.out, "  Explorer: %s\n", result.Verification.ExplorerURL)
	}
	if result.RecordUpdated {
		fmt.Fprintln(r.out, faintStyle.Sprint("  Deployment record updated"))
	}
	return nil
}
