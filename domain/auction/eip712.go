package auction

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/openloot/goapi/domain"
)

const (
	PrimaryType      = "Bid"
	Eip712DomainName = "EIP712Domain"
)

// GetDomainSeparator returns the typed-data domain. The original
// marketplace domain carries no version field, only name, chainId and
// verifyingContract.
func GetDomainSeparator(chainId domain.ChainId, address domain.Address) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              "Marketplace",
		ChainId:           math.NewHexOrDecimal256(int64(chainId)),
		VerifyingContract: address.ToLowerStr(),
	}
}

var BidTypes = apitypes.Types{
	"Bid": {
		{Name: "auctionId", Type: "uint256"},
		{Name: "tokenIds", Type: "uint256[]"},
		{Name: "amounts", Type: "uint256[]"},
		{Name: "bidder", Type: "address"},
		{Name: "price", Type: "uint256"},
		{Name: "token", Type: "address"},
		{Name: "nonce", Type: "uint256"},
	},
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
}

func (b *Bid) ToMessage() apitypes.TypedDataMessage {
	tokenIds := []interface{}{}
	for _, id := range b.TokenIds {
		tokenIds = append(tokenIds, fmt.Sprint(id))
	}
	amounts := []interface{}{}
	for _, a := range b.Amounts {
		amounts = append(amounts, fmt.Sprint(a))
	}
	return apitypes.TypedDataMessage{
		"auctionId": fmt.Sprint(b.AuctionId),
		"tokenIds":  tokenIds,
		"amounts":   amounts,
		"bidder":    b.Bidder.ToLowerStr(),
		"price":     b.Price,
		"token":     b.Token.ToLowerStr(),
		"nonce":     fmt.Sprint(b.Nonce),
	}
}

// Digest builds the domain-bound digest the bidder signed:
// keccak256(0x1901 || hashStruct(domain) || hashStruct(bid)).
func (b *Bid) Digest(chainId domain.ChainId, verifyingContract domain.Address) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types:       BidTypes,
		PrimaryType: PrimaryType,
		Domain:      GetDomainSeparator(chainId, verifyingContract),
		Message:     b.ToMessage(),
	}
	domainSeparator, err := typedData.HashStruct(Eip712DomainName, typedData.Domain.Map())
	if err != nil {
		return nil, err
	}
	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, err
	}
	raw := []byte{0x19, 0x01}
	raw = append(raw, domainSeparator...)
	raw = append(raw, messageHash...)
	return crypto.Keccak256(raw), nil
}
