package config

import (
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

const (
	// DefaultEndpoint is used for any network whose endpoint variable is unset
	DefaultEndpoint = "http://localhost:8545"

	// PlaceholderPrivateKey is used when neither the network key nor DEFAULT_PRIVATE_KEY is set
	PlaceholderPrivateKey = "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"

	DefaultRPCTimeout   = 40 * time.Second
	LocalhostRPCTimeout = 600 * time.Second

	EnvKMSKeyID          = "KMS_KEY_ID"
	EnvDefaultPrivateKey = "DEFAULT_PRIVATE_KEY"
)

// Resolve builds a descriptor from raw connection material. A non-empty
// kmsKeyID selects KMS signing and no key material is kept. Otherwise the
// private key is carried 0x-prefixed. A zero gasPrice means no override.
// Inputs are not validated.
func Resolve(url, kmsKeyID, privateKey string, gasPrice uint64) config.NetworkDescriptor {
	d := config.NetworkDescriptor{URL: url}

	if kmsKeyID != "" {
		d.Signing = config.KMSSigning{KeyID: kmsKeyID}
	} else {
		d.Signing = config.PrivateKeySigning{Key: formatPrivateKey(privateKey)}
	}

	if gasPrice != 0 {
		d.GasPrice = new(big.Int).SetUint64(gasPrice)
	}

	return d
}

func formatPrivateKey(key string) string {
	key = strings.TrimPrefix(strings.TrimPrefix(key, "0x"), "0X")
	return "0x" + strings.ToLower(key)
}

// networkDef is one row of the built-in network table
type networkDef struct {
	name     string
	envName  string // prefix of <PREFIX>_ENDPOINT and <PREFIX>_PRIVATE_KEY
	class    config.NetworkClass
	chainID  uint64
	gasPrice uint64
}

// builtinNetworks lists networks in registration order. qubetics appears
// twice; the second registration replaces the first.
var builtinNetworks = []networkDef{
	// Testnets
	{name: "sepolia", envName: "SEPOLIA", class: config.NetworkClassTestnet, chainID: 11155111},
	{name: "baseSepolia", envName: "BASE_SEPOLIA", class: config.NetworkClassTestnet, chainID: 84532},
	{name: "bscTest", envName: "BSC_TEST", class: config.NetworkClassTestnet, chainID: 97},
	{name: "qubeticsTest", envName: "QUBETICS_TEST", class: config.NetworkClassTestnet, chainID: 9029},
	{name: "optimismTest", envName: "OPTIMISM_TEST", class: config.NetworkClassTestnet, chainID: 11155420},
	{name: "avalancheTest", envName: "AVALANCHE_TEST", class: config.NetworkClassTestnet, chainID: 43113},
	{name: "polygonTest", envName: "POLYGON_TEST", class: config.NetworkClassTestnet, chainID: 80002},

	// Mainnets
	{name: "ethMainnet", envName: "ETH_MAINNET", class: config.NetworkClassMainnet, chainID: 1},
	{name: "bsc", envName: "BSC", class: config.NetworkClassMainnet, chainID: 56, gasPrice: 5_000_000_000},
	{name: "polygon", envName: "POLYGON", class: config.NetworkClassMainnet, chainID: 137, gasPrice: 50_000_000_000},
	{name: "qubetics", envName: "QUBETICS", class: config.NetworkClassMainnet, chainID: 9030},
	{name: "avalanche", envName: "AVALANCHE", class: config.NetworkClassMainnet, chainID: 43114},
	{name: "optimism", envName: "OPTIMISM", class: config.NetworkClassMainnet, chainID: 10},
	{name: "qubetics", envName: "QUBETICS", class: config.NetworkClassMainnet, chainID: 9030},
	{name: "base", envName: "BASE", class: config.NetworkClassMainnet, chainID: 8453},
}

// EndpointVar returns the endpoint variable for an env prefix, e.g. BSC_TEST_ENDPOINT
func EndpointVar(envName string) string { return envName + "_ENDPOINT" }

// PrivateKeyVar returns the private key variable for an env prefix, e.g. BSC_TEST_PRIVATE_KEY
func PrivateKeyVar(envName string) string { return envName + "_PRIVATE_KEY" }

// NetworkBuilder turns the static table, the environment snapshot and any
// project-defined networks into a NetworkTable.
type NetworkBuilder struct {
	env    Environment
	log    *slog.Logger
	defKey    string
	hasDefKey bool
	kmsID     string
}

func NewNetworkBuilder(env Environment, log *slog.Logger) *NetworkBuilder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &NetworkBuilder{
		env:    env,
		log:    log,
		defKey:    env.GetOr(EnvDefaultPrivateKey, PlaceholderPrivateKey),
		hasDefKey: env.Get(EnvDefaultPrivateKey) != "",
		kmsID:     env.Get(EnvKMSKeyID),
	}
}

// Build registers localhost, the built-in networks and then project networks,
// in that order. Duplicate names keep the last definition and are logged.
func (b *NetworkBuilder) Build(project map[string]ProjectNetwork, projectOrder []string) *config.NetworkTable {
	table := config.NewNetworkTable()

	b.register(table, config.NetworkDescriptor{
		Name:    "localhost",
		URL:     DefaultEndpoint,
		Signing: b.localSigning(),
		Class:   config.NetworkClassLocal,
		ChainID: 31337,
		Timeout: LocalhostRPCTimeout,
	})

	for _, def := range builtinNetworks {
		b.register(table, b.fromDef(def))
	}

	for _, name := range projectOrder {
		pn, ok := project[name]
		if !ok {
			continue
		}
		b.register(table, b.fromProject(name, pn))
	}

	return table
}

// localSigning uses DEFAULT_PRIVATE_KEY when set, otherwise the local
// node's own unlocked accounts.
func (b *NetworkBuilder) localSigning() config.Signing {
	if b.hasDefKey {
		return config.PrivateKeySigning{Key: formatPrivateKey(b.defKey)}
	}
	return config.NodeAccountSigning{}
}

func (b *NetworkBuilder) fromDef(def networkDef) config.NetworkDescriptor {
	url := b.lookup(def.name, EndpointVar(def.envName), DefaultEndpoint)
	key := b.lookup(def.name, PrivateKeyVar(def.envName), b.defKey)

	// KMS signing only applies to mainnet-class networks
	kmsID := ""
	if def.class == config.NetworkClassMainnet {
		kmsID = b.kmsID
	}

	d := Resolve(url, kmsID, key, def.gasPrice)
	d.Name = def.name
	d.Class = def.class
	d.ChainID = def.chainID
	d.Timeout = DefaultRPCTimeout
	b.warnPlaceholder(d)
	return d
}

func (b *NetworkBuilder) fromProject(name string, pn ProjectNetwork) config.NetworkDescriptor {
	class := config.NetworkClass(pn.Class)
	if class == "" {
		class = config.NetworkClassTestnet
	}

	url := b.env.Expand(pn.URL)
	if url == "" {
		url = DefaultEndpoint
	}
	key := b.env.Expand(pn.PrivateKey)
	if key == "" {
		key = b.defKey
	}

	kmsID := ""
	if class == config.NetworkClassMainnet {
		kmsID = b.kmsID
	}

	d := Resolve(url, kmsID, key, pn.GasPrice)
	d.Name = name
	d.Class = class
	d.ChainID = pn.ChainID
	d.Timeout = DefaultRPCTimeout
	if pn.Timeout != "" {
		if timeout, err := time.ParseDuration(pn.Timeout); err == nil {
			d.Timeout = timeout
		} else {
			b.log.Warn("ignoring invalid network timeout", "network", name, "timeout", pn.Timeout)
		}
	}
	b.warnPlaceholder(d)
	return d
}

func (b *NetworkBuilder) lookup(network, key, fallback string) string {
	if v := b.env.Get(key); v != "" {
		return v
	}
	b.log.Debug("environment variable not set, using default", "network", network, "var", key)
	return fallback
}

func (b *NetworkBuilder) register(table *config.NetworkTable, d config.NetworkDescriptor) {
	if table.Register(d) {
		b.log.Warn("network defined more than once, keeping the last definition", "network", d.Name)
	}
}

func (b *NetworkBuilder) warnPlaceholder(d config.NetworkDescriptor) {
	if d.Class != config.NetworkClassMainnet {
		return
	}
	if key, ok := d.PrivateKey(); ok && key == "0x"+PlaceholderPrivateKey {
		b.log.Warn("mainnet network uses the placeholder private key", "network", d.Name)
	}
}
