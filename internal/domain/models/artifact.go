package models

import (
	"encoding/json"
	"strings"
)

// Artifact is a compiled contract as emitted by the Solidity build
type Artifact struct {
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`

	// Path of the artifact file, relative to the project root
	File string `json:"-"`
	// Path of the build-info file, empty when no debug file was emitted
	BuildInfoFile string `json:"-"`
}

// FullyQualifiedName returns "sourceName:contractName"
func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

// DeployedSize returns the deployed bytecode length in bytes
func (a *Artifact) DeployedSize() int {
	return len(strings.TrimPrefix(a.DeployedBytecode, "0x")) / 2
}

// InitcodeSize returns the creation bytecode length in bytes
func (a *Artifact) InitcodeSize() int {
	return len(strings.TrimPrefix(a.Bytecode, "0x")) / 2
}

// HasBytecode reports whether the artifact is deployable (not an interface or abstract contract)
func (a *Artifact) HasBytecode() bool {
	return len(strings.TrimPrefix(a.Bytecode, "0x")) > 0
}

// BuildInfo is the compiler input and version an artifact was built from
type BuildInfo struct {
	ID              string          `json:"id"`
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

// CompilerVersion returns the explorer form of the compiler version, e.g. "v0.8.17+commit.8df45f5f"
func (b *BuildInfo) CompilerVersion() string {
	return "v" + b.SolcLongVersion
}
