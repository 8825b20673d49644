package ethereum

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMsgSignature(t *testing.T) {
	messageTemplate := "this is signature message template %s"
	privateKey, publicKey, err := GenerateKey()
	assert.NoError(t, err)
	address := crypto.PubkeyToAddress(*publicKey).Hex()
	nonce := "123456"
	message := []byte(fmt.Sprintf(messageTemplate, nonce))
	hash := accounts.TextHash(message)
	signature, err := crypto.Sign(hash, privateKey)
	assert.NoError(t, err)

	res, err := ValidateMsgSignature(message, hexutil.Encode(signature), address)
	assert.NoError(t, err)
	assert.True(t, res)

	// incorrect nonce
	res2, err := ValidateMsgSignature([]byte("654321"), hexutil.Encode(signature), address)
	assert.NoError(t, err)
	assert.False(t, res2)

	// incorrect signer
	_, pubKey, err := GenerateKey()
	assert.NoError(t, err)
	res3, err := ValidateMsgSignature(message, hexutil.Encode(signature), crypto.PubkeyToAddress(*pubKey).Hex())
	assert.NoError(t, err)
	assert.False(t, res3)
}

func TestValidateHashSignature(t *testing.T) {
	req := require.New(t)
	privateKey, publicKey, err := GenerateKey()
	req.NoError(err)
	address := crypto.PubkeyToAddress(*publicKey).Hex()
	hash := crypto.Keccak256([]byte("settle order 42"))
	signature, err := crypto.Sign(hash, privateKey)
	req.NoError(err)

	valid, err := ValidateHashSignature(hash, hexutil.Encode(signature), address)
	req.NoError(err)
	req.True(valid)

	otherHash := crypto.Keccak256([]byte("settle order 43"))
	valid, err = ValidateHashSignature(otherHash, hexutil.Encode(signature), address)
	req.NoError(err)
	req.False(valid)
}

func TestRecoverSigner(t *testing.T) {
	req := require.New(t)
	privateKey, publicKey, err := GenerateKey()
	req.NoError(err)
	expected := crypto.PubkeyToAddress(*publicKey)
	digest := crypto.Keccak256([]byte("typed data digest"))
	sig, err := crypto.Sign(digest, privateKey)
	req.NoError(err)

	recoverer := NewRecoverer()
	signer, err := recoverer.RecoverSigner(digest, sig)
	req.NoError(err)
	req.Equal(expected, signer)

	// legacy 27/28 recovery id
	sig[crypto.RecoveryIDOffset] += 27
	signer, err = recoverer.RecoverSigner(digest, sig)
	req.NoError(err)
	req.Equal(expected, signer)
}

func TestCombineSignature(t *testing.T) {
	req := require.New(t)
	privateKey, _, err := GenerateKey()
	req.NoError(err)
	digest := crypto.Keccak256([]byte("split signature"))
	sig, err := crypto.Sign(digest, privateKey)
	req.NoError(err)

	r := hexutil.Encode(sig[:32])
	s := hexutil.Encode(sig[32:64])
	combined, err := CombineSignature(sig[64], r, s)
	req.NoError(err)
	req.Equal(sig, combined)

	_, err = CombineSignature(27, "0x01", s)
	req.Error(err)
	_, err = CombineSignature(27, "not-hex", s)
	req.Error(err)
}
