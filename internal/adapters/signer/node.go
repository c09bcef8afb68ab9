package signer

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// ErrNodeSigns is returned when a node account is asked to sign offline
var ErrNodeSigns = errors.New("node account transactions are signed by the node on send")

// NodeAccountSigner sends through the first account a development node
// (hardhat node, anvil) holds unlocked.
type NodeAccountSigner struct {
	rpc     *rpc.Client
	address common.Address
	chainID *big.Int
}

// sendArgs is the eth_sendTransaction parameter object
type sendArgs struct {
	From                 common.Address  `json:"from"`
	To                   *common.Address `json:"to,omitempty"`
	Data                 hexutil.Bytes   `json:"data"`
	Value                *hexutil.Big    `json:"value"`
	Gas                  hexutil.Uint64  `json:"gas"`
	Nonce                hexutil.Uint64  `json:"nonce"`
	GasPrice             *hexutil.Big    `json:"gasPrice,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	ChainID              *hexutil.Big    `json:"chainId,omitempty"`
}

// NewNodeAccountSigner picks eth_accounts[0] of the node behind client.
func NewNodeAccountSigner(ctx context.Context, client *rpc.Client, chainID *big.Int) (*NodeAccountSigner, error) {
	var accounts []common.Address
	if err := client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, errors.New("node has no unlocked accounts")
	}

	return &NodeAccountSigner{
		rpc:     client,
		address: accounts[0],
		chainID: new(big.Int).Set(chainID),
	}, nil
}

// Address returns the node account.
func (s *NodeAccountSigner) Address() common.Address {
	return s.address
}

// ChainID returns the chain ID for signing.
func (s *NodeAccountSigner) ChainID() *big.Int {
	return s.chainID
}

// SignTransaction always fails; use SendFromNode.
func (s *NodeAccountSigner) SignTransaction(context.Context, *types.Transaction) (*types.Transaction, error) {
	return nil, ErrNodeSigns
}

// SendFromNode submits tx with eth_sendTransaction from the node account.
func (s *NodeAccountSigner) SendFromNode(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	args := sendArgs{
		From:    s.address,
		To:      tx.To(),
		Data:    tx.Data(),
		Value:   (*hexutil.Big)(tx.Value()),
		Gas:     hexutil.Uint64(tx.Gas()),
		Nonce:   hexutil.Uint64(tx.Nonce()),
		ChainID: (*hexutil.Big)(s.chainID),
	}
	if tx.Type() == types.DynamicFeeTxType {
		args.MaxFeePerGas = (*hexutil.Big)(tx.GasFeeCap())
		args.MaxPriorityFeePerGas = (*hexutil.Big)(tx.GasTipCap())
	} else {
		args.GasPrice = (*hexutil.Big)(tx.GasPrice())
	}

	var hash common.Hash
	if err := s.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, fmt.Errorf("eth_sendTransaction: %w", err)
	}
	return hash, nil
}

var (
	_ usecase.TransactionSigner = (*NodeAccountSigner)(nil)
	_ usecase.NodeSender        = (*NodeAccountSigner)(nil)
)
