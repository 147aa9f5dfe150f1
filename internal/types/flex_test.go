package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	var in struct {
		Quantity FlexString `json:"quantity"`
	}

	for raw, want := range map[string]FlexString{
		`{"quantity": 2}`:       "2",
		`{"quantity": 0.5}`:     "0.5",
		`{"quantity": " 1/2 "}`: "1/2",
		`{"quantity": ""}`:      "",
	} {
		in.Quantity = ""
		require.NoError(t, json.Unmarshal([]byte(raw), &in), raw)
		assert.Equal(t, want, in.Quantity, raw)
	}

	assert.Error(t, json.Unmarshal([]byte(`{"quantity": [1]}`), &in))
}

func TestFlexInt(t *testing.T) {
	var in struct {
		Servings FlexInt `json:"servings"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"servings": 4}`), &in))
	assert.Equal(t, FlexInt(4), in.Servings)
	require.NoError(t, json.Unmarshal([]byte(`{"servings": "6"}`), &in))
	assert.Equal(t, FlexInt(6), in.Servings)

	for _, raw := range []string{`{"servings": 2.5}`, `{"servings": "two"}`, `{"servings": true}`} {
		assert.Error(t, json.Unmarshal([]byte(raw), &in), raw)
	}
}
