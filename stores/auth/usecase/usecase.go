package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/ethereum"
	"github.com/openloot/goapi/domain"
)

// signingMsg is what wallets sign to prove control of an address before
// a token is issued.
const signingMsg = "Sign in to the settlement engine"

type impl struct {
	jwtSecret []byte
	tokenTTL  time.Duration
}

func New(jwtSecret string, tokenTTL time.Duration) domain.AuthUsecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	ok, err := ethereum.ValidateMsgSignature([]byte(signingMsg), signature, string(address))
	if err != nil {
		ctx.WithField("err", err).Error("ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	}
	if !ok {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrUnauthorized
}
