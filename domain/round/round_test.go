package round

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openloot/goapi/domain"
)

func TestGetFindOptions(t *testing.T) {
	req := require.New(t)

	opts, err := GetFindOptions(
		WithChainId(5),
		WithCurator("0x00000000000000000000000000000000C0FFEE00"),
		WithPagination(10, 20),
		WithSort("createdAt", domain.SortDirDesc),
	)
	req.NoError(err)
	req.Equal(domain.ChainId(5), *opts.ChainId)
	req.Equal("0x00000000000000000000000000000000c0ffee00", string(*opts.Curator))
	req.Equal(int32(10), *opts.Offset)
	req.Equal(int32(20), *opts.Limit)
	req.Equal("createdAt", *opts.SortBy)
	req.Equal(domain.SortDirDesc, *opts.SortDir)
}
