package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsUnwrapToSentinels(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"unknown network", UnknownNetworkErr{Name: "bsx"}, ErrUnknownNetwork},
		{"connectivity", &ConnectivityErr{Network: "bsc", URL: "http://x", Err: cause}, ErrConnectivity},
		{"connectivity cause", &ConnectivityErr{Network: "bsc", URL: "http://x", Err: cause}, cause},
		{"signing", &SigningErr{Method: "kms", Err: cause}, ErrSigning},
		{"verification", &VerificationErr{Address: "0x1", Reason: "bad"}, ErrVerificationFailed},
		{"wrapped", fmt.Errorf("deploy: %w", &SigningErr{Method: "private_key", Err: cause}), ErrSigning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestUnknownNetworkErrMessage(t *testing.T) {
	assert.Equal(t, `unknown network "bsx"`, UnknownNetworkErr{Name: "bsx"}.Error())
	assert.Equal(t,
		`unknown network "bsx" (did you mean bsc, bscTest?)`,
		UnknownNetworkErr{Name: "bsx", Suggestions: []string{"bsc", "bscTest"}}.Error(),
	)
}

func TestAmbiguousArtifactErrSortsMatches(t *testing.T) {
	err := AmbiguousArtifactErr{
		Name:    "Bridge",
		Matches: []string{"contracts/z/Bridge.sol:Bridge", "contracts/a/Bridge.sol:Bridge"},
	}

	assert.Equal(t, "multiple artifacts found for Bridge - use path:contract format to disambiguate:\n"+
		"  - contracts/a/Bridge.sol:Bridge\n"+
		"  - contracts/z/Bridge.sol:Bridge", err.Error())
}
