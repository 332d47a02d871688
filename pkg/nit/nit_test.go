package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cierre-fiscal/pkg/nit"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		body string
		want byte
	}{
		{"1234567", '9'}, // suma 112, residuo 2
		{"19", '1'},      // suma 21, residuo 10
		{"10", '8'},      // suma 3
		{"1", '9'},       // suma 2
		{"6", 'K'},       // suma 12, residuo 1 → 10
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := nit.CheckDigit(tt.body)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), string(got))
		})
	}
}

func TestCheckDigit_CuerpoInvalido(t *testing.T) {
	_, err := nit.CheckDigit("")
	assert.Error(t, err)
	_, err = nit.CheckDigit("12A")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, nit.Validate("1234567-9"))
	assert.NoError(t, nit.Validate("12345679"))
	assert.NoError(t, nit.Validate("6-k"))
	assert.Error(t, nit.Validate("1234567-K"))
	assert.Error(t, nit.Validate("9"))
	assert.Error(t, nit.Validate("CF"))
}

func TestNormalizeYConsumidorFinal(t *testing.T) {
	assert.Equal(t, "1234567K", nit.Normalize(" 1234567-k "))
	assert.True(t, nit.IsFinalConsumer("c/f"))
	assert.False(t, nit.IsFinalConsumer("12345679"))
}
