package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrUnknownNetwork is returned when a network name is not in the network table
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNetworkMismatch is returned when the endpoint reports a different chain than expected
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrConnectivity is returned when a network endpoint cannot be reached
	ErrConnectivity = errors.New("network unreachable")

	// ErrSigning is returned when the signer cannot be built or refuses to sign
	ErrSigning = errors.New("signing failed")

	// ErrContractNotFound is returned when a compiled artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrDeploymentReverted is returned when the creation transaction was mined but reverted
	ErrDeploymentReverted = errors.New("deployment reverted")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrNoExplorer is returned when no block explorer is configured for a chain
	ErrNoExplorer = errors.New("no block explorer configured")

	// ErrDeploymentCancelled is returned when the operator declines a deployment
	ErrDeploymentCancelled = errors.New("deployment cancelled")
)

// UnknownNetworkErr is returned for a network name missing from the table.
type UnknownNetworkErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownNetworkErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown network %q", e.Name)
	}
	return fmt.Sprintf("unknown network %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e UnknownNetworkErr) Unwrap() error {
	return ErrUnknownNetwork
}

// ConnectivityErr wraps a failure to talk to a network endpoint.
type ConnectivityErr struct {
	Network string
	URL     string
	Err     error
}

func (e *ConnectivityErr) Error() string {
	return fmt.Sprintf("network %s (%s) unreachable: %v", e.Network, e.URL, e.Err)
}

func (e *ConnectivityErr) Unwrap() []error {
	return []error{ErrConnectivity, e.Err}
}

// SigningErr wraps a failure of the signing backend.
type SigningErr struct {
	Method string
	Err    error
}

func (e *SigningErr) Error() string {
	return fmt.Sprintf("%s signer: %v", e.Method, e.Err)
}

func (e *SigningErr) Unwrap() []error {
	return []error{ErrSigning, e.Err}
}

// VerificationErr describes a rejected or incomplete source verification.
type VerificationErr struct {
	Address  string
	Explorer string
	Reason   string
}

func (e *VerificationErr) Error() string {
	if e.Explorer == "" {
		return fmt.Sprintf("verification of %s failed: %s", e.Address, e.Reason)
	}
	return fmt.Sprintf("verification of %s on %s failed: %s", e.Address, e.Explorer, e.Reason)
}

func (e *VerificationErr) Unwrap() error {
	return ErrVerificationFailed
}

// AmbiguousArtifactErr is returned when a short contract name matches several artifacts.
type AmbiguousArtifactErr struct {
	Name    string
	Matches []string
}

func (e AmbiguousArtifactErr) Error() string {
	matches := make([]string, len(e.Matches))
	copy(matches, e.Matches)
	sort.Strings(matches)

	var suggestions []string
	for _, m := range matches {
		suggestions = append(suggestions, "  - "+m)
	}

	return fmt.Sprintf("multiple artifacts found for %s - use path:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
