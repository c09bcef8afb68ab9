package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DeploymentState is the lifecycle state of a contract instance
type DeploymentState string

const (
	DeploymentStateUndeployed DeploymentState = "UNDEPLOYED"
	DeploymentStateDeployed   DeploymentState = "DEPLOYED"
)

// VerificationStatus represents the verification status
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "UNVERIFIED"
	VerificationStatusVerified   VerificationStatus = "VERIFIED"
	VerificationStatusFailed     VerificationStatus = "FAILED"
	VerificationStatusSkipped    VerificationStatus = "SKIPPED"
)

// Deployment is the record of one contract instance created on one network.
// The on-disk layout follows hardhat-deploy so existing tooling can read it.
type Deployment struct {
	// Core identification
	ContractName string `json:"contractName"`
	Network      string `json:"network"`
	ChainID      uint64 `json:"chainId"`
	Address      string `json:"address"`
	Deployer     string `json:"deployer"`

	// Creation transaction
	TransactionHash string          `json:"transactionHash"`
	Receipt         *ReceiptSummary `json:"receipt,omitempty"`
	Args            []string        `json:"args"`

	// Contract artifact information
	ABI              json.RawMessage `json:"abi,omitempty"`
	Bytecode         string          `json:"bytecode,omitempty"`
	DeployedBytecode string          `json:"deployedBytecode,omitempty"`
	Artifact         ArtifactInfo    `json:"artifact"`

	// Verification information
	Verification VerificationInfo `json:"verification"`

	// Metadata
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReceiptSummary keeps the receipt fields worth persisting
type ReceiptSummary struct {
	From              string `json:"from"`
	ContractAddress   string `json:"contractAddress"`
	TransactionIndex  uint   `json:"transactionIndex"`
	GasUsed           uint64 `json:"gasUsed"`
	EffectiveGasPrice string `json:"effectiveGasPrice,omitempty"`
	BlockHash         string `json:"blockHash"`
	BlockNumber       uint64 `json:"blockNumber"`
	Status            uint64 `json:"status"`
}

// ArtifactInfo contains contract artifact information
type ArtifactInfo struct {
	Path            string `json:"path"`            // e.g., "contracts/QubeBridge.sol:QubeBridge"
	CompilerVersion string `json:"compilerVersion"` // e.g., "0.8.17+commit.8df45f5f"
	BytecodeHash    string `json:"bytecodeHash"`    // keccak256 of the deployed bytecode
}

// VerificationInfo contains verification details
type VerificationInfo struct {
	Status      VerificationStatus `json:"status"`
	Explorer    string             `json:"explorer,omitempty"`
	ExplorerURL string             `json:"explorerUrl,omitempty"`
	GUID        string             `json:"guid,omitempty"`
	VerifiedAt  *time.Time         `json:"verifiedAt,omitempty"`
	Reason      string             `json:"reason,omitempty"`
}

// State returns Deployed once the record carries an address.
func (d *Deployment) State() DeploymentState {
	if d == nil || d.Address == "" {
		return DeploymentStateUndeployed
	}
	return DeploymentStateDeployed
}

// ID returns the network-scoped identifier of the deployment
func (d *Deployment) ID() string {
	return fmt.Sprintf("%s/%s", d.Network, d.ContractName)
}

// IsVerified reports whether the explorer accepted the source
func (d *Deployment) IsVerified() bool {
	return d.Verification.Status == VerificationStatusVerified
}
