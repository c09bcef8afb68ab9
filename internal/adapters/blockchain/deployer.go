package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// Deployer sends contract creation transactions
type Deployer struct {
	log *slog.Logger
}

// NewDeployer creates a new deployer
func NewDeployer(log *slog.Logger) *Deployer {
	return &Deployer{log: log}
}

type fees struct {
	gasPrice  *big.Int // legacy
	gasTipCap *big.Int // EIP-1559
	gasFeeCap *big.Int // EIP-1559
}

func (f fees) dynamic() bool {
	return f.gasFeeCap != nil
}

// DeployContract signs and sends exactly one contract creation transaction
// and waits for it to be mined.
func (d *Deployer) DeployContract(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployOutcome, error) {
	if !req.Artifact.HasBytecode() {
		return nil, fmt.Errorf("%s has no creation bytecode (abstract contract or interface?)", req.Artifact.ContractName)
	}

	client := req.Client
	from := req.Signer.Address()
	data := append(common.FromHex(req.Artifact.Bytecode), req.ConstructorArgs...)

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	f, err := d.fees(ctx, client, req)
	if err != nil {
		return nil, err
	}

	call := ethereum.CallMsg{
		From:      from,
		To:        nil,
		Data:      data,
		Value:     big.NewInt(0),
		GasPrice:  f.gasPrice,
		GasTipCap: f.gasTipCap,
		GasFeeCap: f.gasFeeCap,
	}
	gasLimit, err := client.EstimateGas(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	var tx *types.Transaction
	if f.dynamic() {
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   req.Signer.ChainID(),
			Nonce:     nonce,
			GasTipCap: f.gasTipCap,
			GasFeeCap: f.gasFeeCap,
			Gas:       gasLimit,
			To:        nil,
			Value:     big.NewInt(0),
			Data:      data,
		})
	} else {
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: f.gasPrice,
			Gas:      gasLimit,
			To:       nil,
			Value:    big.NewInt(0),
			Data:     data,
		})
	}

	txHash, err := d.send(ctx, req, tx)
	if err != nil {
		return nil, err
	}

	d.log.Info("contract creation sent",
		slog.String("network", req.Network.Name),
		slog.String("contract", req.Artifact.ContractName),
		slog.String("tx_hash", txHash.Hex()),
		slog.Uint64("nonce", nonce),
		slog.Uint64("gas_limit", gasLimit),
	)

	receipt, err := bind.WaitMinedHash(ctx, client, txHash)
	if err != nil {
		return nil, fmt.Errorf("wait for receipt of %s: %w", txHash.Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s in tx %s", domain.ErrDeploymentReverted, req.Artifact.ContractName, txHash.Hex())
	}

	d.log.Info("contract deployed",
		slog.String("contract", req.Artifact.ContractName),
		slog.String("address", receipt.ContractAddress.Hex()),
		slog.Uint64("gas_used", receipt.GasUsed),
	)

	return &usecase.DeployOutcome{
		Address: receipt.ContractAddress,
		TxHash:  txHash,
		Receipt: receipt,
	}, nil
}

// send broadcasts tx. Node accounts hand the unsigned transaction to the
// node; every other signer signs it here first.
func (d *Deployer) send(ctx context.Context, req usecase.DeployRequest, tx *types.Transaction) (common.Hash, error) {
	if sender, ok := req.Signer.(usecase.NodeSender); ok {
		hash, err := sender.SendFromNode(ctx, tx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("send transaction: %w", err)
		}
		return hash, nil
	}

	signedTx, err := req.Signer.SignTransaction(ctx, tx)
	if err != nil {
		return common.Hash{}, &domain.SigningErr{Method: string(req.Network.SigningMethod()), Err: err}
	}
	if err := req.Client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}
	return signedTx.Hash(), nil
}

// fees picks the fee model: a configured gas price forces a legacy
// transaction, otherwise EIP-1559 is used when the chain reports a base fee.
func (d *Deployer) fees(ctx context.Context, client usecase.ChainClient, req usecase.DeployRequest) (fees, error) {
	if req.Network.HasGasPrice() {
		return fees{gasPrice: new(big.Int).Set(req.Network.GasPrice)}, nil
	}

	head, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return fees{}, fmt.Errorf("get latest header: %w", err)
	}

	if head.BaseFee != nil {
		tip, err := client.SuggestGasTipCap(ctx)
		if err != nil {
			return fees{}, fmt.Errorf("suggest gas tip cap: %w", err)
		}
		feeCap := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
		feeCap.Add(feeCap, tip)
		return fees{gasTipCap: tip, gasFeeCap: feeCap}, nil
	}

	price, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return fees{}, fmt.Errorf("suggest gas price: %w", err)
	}
	return fees{gasPrice: price}, nil
}

var _ usecase.ContractDeployer = (*Deployer)(nil)
