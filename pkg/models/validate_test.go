package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Contracts"))
	require.NoError(t, ValidateName("Invoices 2024"))
	require.NoError(t, ValidateName("a"))
	require.NoError(t, ValidateName(strings.Repeat("x", MaxNameLength)))

	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("x", MaxNameLength+1)))
	assert.Error(t, ValidateName("a/b"))
	assert.Error(t, ValidateName(`quotes"here`))
	assert.Error(t, ValidateName("why?"))
	assert.Error(t, ValidateName(`back\slash`))
}

func TestValidateNameCountsRunesNotBytes(t *testing.T) {
	// 80 multi-byte runes are still within the limit.
	require.NoError(t, ValidateName(strings.Repeat("ü", MaxNameLength)))
	assert.Error(t, ValidateName(strings.Repeat("ü", MaxNameLength+1)))
}

func TestTypedIDRoundTrip(t *testing.T) {
	id := NewFolderID()
	require.False(t, id.IsZero())

	parsed, err := ParseFolderID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseFolderID("not-a-uuid")
	assert.Error(t, err)
}
