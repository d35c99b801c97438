package dynamo

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{"avatar": "photo.png"})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", expr)
	assert.Equal(t, map[string]string{"#f0": "avatar"}, names)
	_, ok := values[":v0"]
	assert.True(t, ok)
}

func TestBuildUpdateExpr_MultipleFields(t *testing.T) {
	updates := map[string]interface{}{
		"title":       "Backend Engineer",
		"description": "Go services",
		"job_status":  "closed",
	}
	expr, names, values, err := buildUpdateExpr(updates)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(expr, "SET "))
	assert.Len(t, names, 3)
	assert.Len(t, values, 3)
	for placeholder, field := range names {
		assert.Contains(t, expr, placeholder)
		assert.Contains(t, updates, field)
	}
}

func TestBuildUpdateExpr_ReservedWordSafe(t *testing.T) {
	// "read" is a DynamoDB reserved word; the placeholder keeps it usable.
	expr, names, _, err := buildUpdateExpr(map[string]interface{}{fieldRead: true})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", expr)
	assert.Equal(t, fieldRead, names["#f0"])
	assert.NotContains(t, expr, fieldRead)
}

func TestBuildUpdateExpr_ValuesMarshalledCorrectly(t *testing.T) {
	_, _, values, err := buildUpdateExpr(map[string]interface{}{fieldRead: true})
	require.NoError(t, err)
	av, ok := values[":v0"]
	require.True(t, ok)
	boolVal, isBool := av.(*types.AttributeValueMemberBOOL)
	require.True(t, isBool)
	assert.True(t, boolVal.Value)
}

func TestBuildUpdateExpr_EmptyMap_ReturnsError(t *testing.T) {
	_, _, _, err := buildUpdateExpr(map[string]interface{}{})
	assert.ErrorContains(t, err, "no fields to update")
}

func TestCursorRoundTrip(t *testing.T) {
	c := encodeCursor("01J8ZV4YJ0FAKEJOBID")
	id, err := decodeCursor(c)
	require.NoError(t, err)
	assert.Equal(t, "01J8ZV4YJ0FAKEJOBID", id)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, err := decodeCursor("%%%not-base64%%%")
	assert.Error(t, err)
}
