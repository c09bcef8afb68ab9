package render

import (
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
)

var (
	headerStyle    = color.New(color.Bold, color.FgHiWhite)
	networkHeader  = color.New(color.BgCyan, color.FgBlack, color.Bold)
	addressStyle   = color.New(color.FgWhite)
	faintStyle     = color.New(color.Faint)
	verifiedStyle  = color.New(color.FgGreen)
	failedStyle    = color.New(color.FgRed)
	skippedStyle   = color.New(color.FgYellow)
	defaultMarker  = color.New(color.FgGreen, color.Bold)
	overLimitStyle = color.New(color.FgRed, color.Bold)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// newTable returns a borderless table writer in the style used by every
// listing command
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: " ",
	}
	t.Style().Format.Header = text.FormatUpper
	t.Style().Color.Header = text.Colors{text.Faint}
	return t
}

// verificationLabel renders a verification status as a colored word
func verificationLabel(status models.VerificationStatus) string {
	if status == "" {
		status = models.VerificationStatusUnverified
	}
	label := cases.Title(language.English).String(strings.ToLower(string(status)))
	switch status {
	case models.VerificationStatusVerified:
		return verifiedStyle.Sprint("✓ " + label)
	case models.VerificationStatusFailed:
		return failedStyle.Sprint("✗ " + label)
	case models.VerificationStatusSkipped:
		return skippedStyle.Sprint("- " + label)
	default:
		return faintStyle.Sprint(label)
	}
}

var gwei = big.NewFloat(1e9)

// formatGwei renders a wei amount in gwei
func formatGwei(wei *big.Int) string {
	if wei == nil {
		return ""
	}
	g := new(big.Float).Quo(new(big.Float).SetInt(wei), gwei)
	return g.Text('f', -1) + " gwei"
}
