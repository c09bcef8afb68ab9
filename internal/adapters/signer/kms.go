package signer

import (
	"bytes"
	"context"
	"crypto/x509/pkix"
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// KMSClient is the part of the AWS KMS API used for signing
type KMSClient interface {
	GetPublicKey(ctx context.Context, params *kms.GetPublicKeyInput, optFns ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error)
	Sign(ctx context.Context, params *kms.SignInput, optFns ...func(*kms.Options)) (*kms.SignOutput, error)
}

var (
	secp256k1N     = crypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

type subjectPublicKeyInfo struct {
	Algorithm pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

type ecdsaSignature struct {
	R, S *big.Int
}

// KMSSigner signs transactions with an ECC_SECG_P256K1 key held in AWS KMS.
// The private key never leaves KMS; only 32-byte digests are sent.
type KMSSigner struct {
	client  KMSClient
	keyID   string
	pubkey  []byte // uncompressed, 65 bytes
	address common.Address
	chainID *big.Int
}

// NewKMSSigner fetches the public key for keyID and derives the signer address.
func NewKMSSigner(ctx context.Context, client KMSClient, keyID string, chainID *big.Int) (*KMSSigner, error) {
	out, err := client.GetPublicKey(ctx, &kms.GetPublicKeyInput{KeyId: aws.String(keyID)})
	if err != nil {
		return nil, fmt.Errorf("get public key: %w", err)
	}

	var spki subjectPublicKeyInfo
	if _, err := asn1.Unmarshal(out.PublicKey, &spki); err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}

	pub, err := crypto.UnmarshalPubkey(spki.PublicKey.Bytes)
	if err != nil {
		return nil, fmt.Errorf("key %s is not a secp256k1 key: %w", keyID, err)
	}

	return &KMSSigner{
		client:  client,
		keyID:   keyID,
		pubkey:  crypto.FromECDSAPub(pub),
		address: crypto.PubkeyToAddress(*pub),
		chainID: new(big.Int).Set(chainID),
	}, nil
}

// Address returns the signer's address.
func (s *KMSSigner) Address() common.Address {
	return s.address
}

// ChainID returns the chain ID for signing.
func (s *KMSSigner) ChainID() *big.Int {
	return s.chainID
}

// KeyID returns the KMS key identifier.
func (s *KMSSigner) KeyID() string {
	return s.keyID
}

// SignTransaction signs the transaction digest in KMS and attaches the signature.
func (s *KMSSigner) SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	txSigner := types.LatestSignerForChainID(s.chainID)
	digest := txSigner.Hash(tx)

	sig, err := s.signDigest(ctx, digest.Bytes())
	if err != nil {
		return nil, err
	}

	signed, err := tx.WithSignature(txSigner, sig)
	if err != nil {
		return nil, fmt.Errorf("attach signature: %w", err)
	}
	return signed, nil
}

// signDigest returns a 65-byte [R || S || V] signature over digest.
func (s *KMSSigner) signDigest(ctx context.Context, digest []byte) ([]byte, error) {
	out, err := s.client.Sign(ctx, &kms.SignInput{
		KeyId:            aws.String(s.keyID),
		Message:          digest,
		MessageType:      kmstypes.MessageTypeDigest,
		SigningAlgorithm: kmstypes.SigningAlgorithmSpecEcdsaSha256,
	})
	if err != nil {
		return nil, fmt.Errorf("kms sign: %w", err)
	}

	var der ecdsaSignature
	if _, err := asn1.Unmarshal(out.Signature, &der); err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	if der.R == nil || der.S == nil || der.R.Sign() <= 0 || der.S.Sign() <= 0 ||
		der.R.Cmp(secp256k1N) >= 0 || der.S.Cmp(secp256k1N) >= 0 {
		return nil, errors.New("malformed signature")
	}

	// Ethereum only accepts signatures with s in the lower half of the curve order
	sVal := new(big.Int).Set(der.S)
	if sVal.Cmp(secp256k1HalfN) > 0 {
		sVal.Sub(secp256k1N, sVal)
	}

	sig := make([]byte, crypto.SignatureLength)
	der.R.FillBytes(sig[0:32])
	sVal.FillBytes(sig[32:64])

	for v := byte(0); v < 2; v++ {
		sig[64] = v
		recovered, err := crypto.Ecrecover(digest, sig)
		if err == nil && bytes.Equal(recovered, s.pubkey) {
			return sig, nil
		}
	}

	return nil, errors.New("signature does not recover to the key's public key")
}

var _ usecase.TransactionSigner = (*KMSSigner)(nil)
