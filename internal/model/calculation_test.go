package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Whole    Decimal `json:"whole"`
		Fraction Decimal `json:"fraction"`
		Zero     Decimal `json:"zero"`
	}{70, 1673.8, 0})
	require.NoError(t, err)
	assert.Equal(t, `{"whole":70.0,"fraction":1673.8,"zero":0.0}`, string(b))
}

func TestFailure_OmitsAge(t *testing.T) {
	b, err := json.Marshal(Failure{Message: "nope"})
	require.NoError(t, err)
	assert.Equal(t, `{"success":false,"message":"nope"}`, string(b))

	age := 7
	b, err = json.Marshal(Failure{Age: &age, Message: "young"})
	require.NoError(t, err)
	assert.Equal(t, `{"success":false,"age":7,"message":"young"}`, string(b))
}
