package nullable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Map      Value[string] `json:"map"`
	Bedrooms Value[uint]   `json:"bedrooms"`
}

func TestValue_JSONPresence(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"map":null}`), &p))

	assert.True(t, p.Map.Set())
	assert.Nil(t, p.Map.Ptr())
	assert.Nil(t, p.Map.Interface())
	assert.False(t, p.Bedrooms.Set())

	p = patch{}
	require.NoError(t, json.Unmarshal([]byte(`{"map":"https://maps.example.com/x","bedrooms":3}`), &p))
	require.NotNil(t, p.Map.Ptr())
	assert.Equal(t, "https://maps.example.com/x", *p.Map.Ptr())
	require.NotNil(t, p.Bedrooms.Ptr())
	assert.Equal(t, uint(3), *p.Bedrooms.Ptr())
	assert.Equal(t, uint(3), p.Bedrooms.Interface())

	assert.Error(t, json.Unmarshal([]byte(`{"bedrooms":"three"}`), &p))
}

func TestValue_UnmarshalParam(t *testing.T) {
	var s Value[string]
	require.NoError(t, s.UnmarshalParam(""))
	assert.True(t, s.Set())
	assert.Nil(t, s.Ptr())

	var u Value[uint]
	require.NoError(t, u.UnmarshalParam("4"))
	assert.Equal(t, uint(4), *u.Ptr())
	assert.Error(t, u.UnmarshalParam("-1"))
}

func TestValue_Constructors(t *testing.T) {
	assert.Equal(t, "x", *Of("x").Ptr())
	assert.True(t, Null[uint]().Set())
	assert.Nil(t, Null[uint]().Ptr())

	b, err := json.Marshal(patch{Map: Of("m")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"map":"m","bedrooms":null}`, string(b))
}
