package filter

import (
	"testing"

	"github.com/datastax/entity-filter/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollectionToken(t *testing.T) {
	token, err := ParseCollectionToken("[Orders | Any | Status == TargetStatus]")
	require.NoError(t, err)
	assert.Equal(t, CollectionToken{
		Collection:    "Orders",
		Quantifier:    types.Any,
		InnerField:    "Status",
		InnerOperator: types.Equal,
		ModelField:    "TargetStatus",
	}, token)

	token, err = ParseCollectionToken(" [ Lines|First|  Quantity >=   MinQuantity ] ")
	require.NoError(t, err)
	assert.Equal(t, "Lines", token.Collection)
	assert.Equal(t, types.First, token.Quantifier)
	assert.Equal(t, types.GreaterThanOrEqual, token.InnerOperator)
	assert.Equal(t, "MinQuantity", token.ModelField)
}

func TestParseCollectionTokenErrors(t *testing.T) {
	tests := []struct {
		token string
		is    func(error) bool
	}{
		{"Orders | Any | Status == TargetStatus", IsTokenFormatError},
		{"[Orders | Any]", IsTokenFormatError},
		{"[Orders | Any | Status == TargetStatus | More]", IsTokenFormatError},
		{"[Orders | Any | Status ==]", IsTokenFormatError},
		{"[Orders | Any | Status == Target Status]", IsTokenFormatError},
		{"[ | Any | Status == TargetStatus]", IsTokenFormatError},
		{"[Orders | Any | Status > TargetStatus]", IsUnknownOperatorError},
		{"[Orders | Any | Status eq TargetStatus]", IsUnknownOperatorError},
		{"[Orders | Some | Status == TargetStatus]", IsUnknownQuantifierError},
		{"[Orders | any | Status == TargetStatus]", IsUnknownQuantifierError},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := ParseCollectionToken(tt.token)
			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected error %v", err)
		})
	}
}

func TestCollectionBuilder(t *testing.T) {
	token := Collection("Orders").All().Where("Status", types.NotEqual, "Excluded")
	assert.Equal(t, "[Orders | All | Status != Excluded]", token.String())

	parsed, err := ParseCollectionToken(token.String())
	require.NoError(t, err)
	assert.Equal(t, token, parsed)

	assert.Equal(t, types.Any, Collection("Orders").Where("Id", types.Equal, "Id").Quantifier)
	assert.Equal(t, "[Orders | First | Price gt MinPrice]",
		Collection("Orders").First().Where("Price", types.GreaterThan, "MinPrice").String())
}

func TestParsePath(t *testing.T) {
	segments, err := parsePath("Customer.[Orders | First | Status == Target.Status].Price")
	require.NoError(t, err)
	require.Len(t, segments, 3)
	assert.Equal(t, "Customer", segments[0].field)
	require.NotNil(t, segments[1].collection)
	assert.Equal(t, "Orders", segments[1].collection.Collection)
	assert.Equal(t, "Price", segments[2].field)

	for _, path := range []string{"[Orders | Any | [Lines | Any | Id == Id] == X]", "Orders]", "[Orders", "Orders.Line[0]"} {
		_, err := parsePath(path)
		assert.True(t, IsTokenFormatError(err), "%s: unexpected error %v", path, err)
	}
	for _, path := range []string{"", "  ", "Customer..Name", "Customer."} {
		_, err := parsePath(path)
		assert.True(t, IsPathResolutionError(err), "%q: unexpected error %v", path, err)
	}
}
