package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "acme ltd", NormalizeName("  ACME   Ltd "))
	assert.Equal(t, NormalizeName("ACME LTD"), NormalizeName("acme ltd"))

	// Turkish casing: dotted İ lowers to i, dotless I lowers to ı.
	assert.Equal(t, "istanbul ticaret", NormalizeName("İSTANBUL TİCARET"))
	assert.Equal(t, "ılgaz", NormalizeName("ILGAZ"))

	assert.Equal(t, "", NormalizeName("   "))
}
