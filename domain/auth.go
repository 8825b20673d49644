package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/openloot/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken verifies the wallet signature over the login message and
	// issues a bearer token bound to the address
	SignToken(c ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(c ctx.Ctx, token string) (string, error)
}
