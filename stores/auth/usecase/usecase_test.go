package usecase

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
)

func TestSignAndParseToken(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	key, err := crypto.HexToECDSA("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	req.NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	hash := accounts.TextHash([]byte(signingMsg))
	sig, err := crypto.Sign(hash, key)
	req.NoError(err)
	sig[64] += 27

	au := New("secret", time.Hour)

	token, err := au.SignToken(c, address, hexutil.Encode(sig))
	req.NoError(err)
	req.NotEmpty(token)

	parsed, err := au.ParseToken(c, token)
	req.NoError(err)
	req.Equal(address.ToLowerStr(), parsed)
}

func TestSignTokenRejectsWrongSigner(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	key, err := crypto.HexToECDSA("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	req.NoError(err)

	hash := accounts.TextHash([]byte(signingMsg))
	sig, err := crypto.Sign(hash, key)
	req.NoError(err)
	sig[64] += 27

	au := New("secret", time.Hour)

	_, err = au.SignToken(c, "0x0000000000000000000000000000000000000001", hexutil.Encode(sig))
	req.ErrorIs(err, domain.ErrInvalidSignature)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	key, err := crypto.HexToECDSA("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	req.NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	hash := accounts.TextHash([]byte(signingMsg))
	sig, err := crypto.Sign(hash, key)
	req.NoError(err)
	sig[64] += 27

	token, err := New("secret", time.Hour).SignToken(c, address, hexutil.Encode(sig))
	req.NoError(err)

	_, err = New("other", time.Hour).ParseToken(c, token)
	req.Error(err)
}
