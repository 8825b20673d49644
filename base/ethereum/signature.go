package ethereum

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignerRecoverer recovers the signing address from a digest and a
// 65-byte [R || S || V] signature. The settlement core only depends on
// this narrow interface so it can be tested with a fake recoverer.
type SignerRecoverer interface {
	RecoverSigner(digest []byte, sig []byte) (common.Address, error)
}

type ecRecoverer struct{}

// NewRecoverer returns the secp256k1-backed SignerRecoverer.
func NewRecoverer() SignerRecoverer {
	return ecRecoverer{}
}

func (ecRecoverer) RecoverSigner(digest []byte, sig []byte) (common.Address, error) {
	return ecRecover(digest, sig)
}

// CombineSignature assembles the [R || S || V] layout from the split
// (v, r, s) representation carried on the wire.
func CombineSignature(v uint8, r, s string) ([]byte, error) {
	rb, err := hexutil.Decode(r)
	if err != nil {
		return nil, err
	}
	sb, err := hexutil.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(rb) != 32 || len(sb) != 32 {
		return nil, fmt.Errorf("signature components must be 32 bytes long")
	}
	sig := make([]byte, 0, crypto.SignatureLength)
	sig = append(sig, rb...)
	sig = append(sig, sb...)
	sig = append(sig, v)
	return sig, nil
}

func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	return validateSignature(message, signature, signer, true)
}

func ValidateHashSignature(hash []byte, signature, signer string) (bool, error) {
	return validateSignature(hash, signature, signer, false)
}

func validateSignature(data []byte, signature, signer string, applyTextHash bool) (bool, error) {
	hash := data
	if applyTextHash {
		hash = accounts.TextHash(data)
	}
	address := common.HexToAddress(signer)
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, err
	}
	recoveredAddress, err := ecRecover(hash, sig)
	if err != nil {
		return false, err
	}
	return bytes.Equal(address.Bytes(), recoveredAddress.Bytes()), nil
}

// ecRecover returns the address for the account that was used to create the signature.
// copy of internal go-ethereum function:
// https://github.com/ethereum/go-ethereum/blob/v1.10.9/internal/ethapi/api.go#L524
func ecRecover(data []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}

	// support both versions of `eth_sign` responses
	//	@see	https://github.com/ethereumjs/ethereumjs-util/blob/master/src/signature.ts#L112
	sigCopy := make([]byte, len(sig))
	copy(sigCopy, sig)

	if sigCopy[crypto.RecoveryIDOffset] >= 27 {
		sigCopy[crypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	if sigCopy[crypto.RecoveryIDOffset] != 0 && sigCopy[crypto.RecoveryIDOffset] != 1 {
		return common.Address{}, fmt.Errorf("invalid Ethereum signature (V is not 27 or 28)")
	}

	rpk, err := crypto.SigToPub(data, sigCopy)

	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*rpk), nil
}
