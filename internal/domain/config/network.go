package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"time"
)

// SigningMethod names the way transactions for a network are signed
type SigningMethod string

const (
	SigningMethodPrivateKey  SigningMethod = "private_key"
	SigningMethodKMS         SigningMethod = "kms"
	SigningMethodNodeAccount SigningMethod = "node_account"
)

// Signing is the signing configuration of a network: PrivateKeySigning,
// KMSSigning or NodeAccountSigning.
type Signing interface {
	Method() SigningMethod
	isSigning()
}

// PrivateKeySigning signs locally with a 0x-prefixed hex private key.
type PrivateKeySigning struct {
	Key string
}

func (PrivateKeySigning) Method() SigningMethod { return SigningMethodPrivateKey }
func (PrivateKeySigning) isSigning()            {}

// KMSSigning delegates signing to a key held by a key management service.
type KMSSigning struct {
	KeyID string
}

func (KMSSigning) Method() SigningMethod { return SigningMethodKMS }
func (KMSSigning) isSigning()            {}

// NodeAccountSigning leaves signing to the first account the node itself
// holds unlocked. Only local development nodes offer one.
type NodeAccountSigning struct{}

func (NodeAccountSigning) Method() SigningMethod { return SigningMethodNodeAccount }
func (NodeAccountSigning) isSigning()            {}

// NetworkClass groups networks by how much care a deployment needs
type NetworkClass string

const (
	NetworkClassLocal   NetworkClass = "local"
	NetworkClassTestnet NetworkClass = "testnet"
	NetworkClassMainnet NetworkClass = "mainnet"
)

// NetworkDescriptor is everything needed to connect to and sign for one network.
type NetworkDescriptor struct {
	Name    string
	URL     string
	Signing Signing
	// GasPrice is a fixed gas price in wei. Nil means the node's suggestion is used.
	GasPrice *big.Int
	Class    NetworkClass
	// ChainID is the chain the endpoint is expected to serve, 0 when unknown.
	ChainID uint64
	Timeout time.Duration
}

// SigningMethod returns the signing method, or "" when signing is unset.
func (n NetworkDescriptor) SigningMethod() SigningMethod {
	if n.Signing == nil {
		return ""
	}
	return n.Signing.Method()
}

// PrivateKey returns the private key material when the network signs locally.
func (n NetworkDescriptor) PrivateKey() (string, bool) {
	pk, ok := n.Signing.(PrivateKeySigning)
	if !ok {
		return "", false
	}
	return pk.Key, true
}

// KMSKeyID returns the KMS key identifier when the network signs through KMS.
func (n NetworkDescriptor) KMSKeyID() (string, bool) {
	k, ok := n.Signing.(KMSSigning)
	if !ok {
		return "", false
	}
	return k.KeyID, true
}

// HasGasPrice reports whether a fixed gas price is configured.
func (n NetworkDescriptor) HasGasPrice() bool {
	return n.GasPrice != nil
}

func (n NetworkDescriptor) String() string {
	s := fmt.Sprintf("%s(%s, %s", n.Name, n.URL, n.SigningMethod())
	if id, ok := n.KMSKeyID(); ok {
		s += " " + id
	}
	if n.HasGasPrice() {
		s += ", gasPrice=" + n.GasPrice.String()
	}
	return s + ")"
}

type networkDescriptorJSON struct {
	Name          string        `json:"name"`
	URL           string        `json:"url"`
	Class         NetworkClass  `json:"class"`
	ChainID       uint64        `json:"chainId,omitempty"`
	SigningMethod SigningMethod `json:"signingMethod"`
	KMSKeyID      string        `json:"kmsKeyId,omitempty"`
	GasPrice      *big.Int      `json:"gasPrice,omitempty"`
	Timeout       string        `json:"timeout,omitempty"`
}

// MarshalJSON never includes private key material.
func (n NetworkDescriptor) MarshalJSON() ([]byte, error) {
	out := networkDescriptorJSON{
		Name:          n.Name,
		URL:           n.URL,
		Class:         n.Class,
		ChainID:       n.ChainID,
		SigningMethod: n.SigningMethod(),
		GasPrice:      n.GasPrice,
	}
	if id, ok := n.KMSKeyID(); ok {
		out.KMSKeyID = id
	}
	if n.Timeout > 0 {
		out.Timeout = n.Timeout.String()
	}
	return json.Marshal(out)
}

// NetworkTable is an ordered set of network descriptors keyed by name.
// Registering a name twice replaces the earlier descriptor in place.
type NetworkTable struct {
	order      []string
	networks   map[string]NetworkDescriptor
	duplicates []string
}

func NewNetworkTable() *NetworkTable {
	return &NetworkTable{networks: make(map[string]NetworkDescriptor)}
}

// Register adds a descriptor and reports whether it replaced an existing one.
func (t *NetworkTable) Register(d NetworkDescriptor) bool {
	_, exists := t.networks[d.Name]
	t.networks[d.Name] = d
	if exists {
		t.duplicates = append(t.duplicates, d.Name)
		return true
	}
	t.order = append(t.order, d.Name)
	return false
}

func (t *NetworkTable) Get(name string) (NetworkDescriptor, bool) {
	d, ok := t.networks[name]
	return d, ok
}

// Names returns network names in first-registration order.
func (t *NetworkTable) Names() []string {
	return slices.Clone(t.order)
}

func (t *NetworkTable) All() []NetworkDescriptor {
	out := make([]NetworkDescriptor, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.networks[name])
	}
	return out
}

func (t *NetworkTable) Len() int {
	return len(t.order)
}

// Duplicates lists every name that was registered more than once, once per extra registration.
func (t *NetworkTable) Duplicates() []string {
	return slices.Clone(t.duplicates)
}
