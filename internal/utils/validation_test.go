package utils_test

import (
	"testing"

	"github.com/Alkhemd/SistemaH2-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := utils.ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = utils.ParseID("  7 ")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5", "999999999999999999999"} {
		_, err := utils.ParseID(raw)
		assert.ErrorIs(t, err, utils.ErrInvalidID, "input %q", raw)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", utils.SanitizeString("<script>"))
	assert.Equal(t, "ab", utils.SanitizeString("a\x00b"))
	// Newlines and tabs survive.
	assert.Equal(t, "a\nb\tc", utils.SanitizeString("a\nb\tc"))
	assert.Equal(t, "", utils.SanitizeString(""))
}
