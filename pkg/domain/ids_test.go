package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "haven/pkg/domain-errors"
)

func TestParseSequenceIDs(t *testing.T) {
	t.Run("accepts zero", func(t *testing.T) {
		id, err := ParseProofID("0")
		require.NoError(t, err)
		assert.Equal(t, ProofID(0), id)
	})

	t.Run("round trips through String", func(t *testing.T) {
		id, err := ParseCourseID("42")
		require.NoError(t, err)
		assert.Equal(t, "42", id.String())
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseCredentialID("")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects negatives and garbage", func(t *testing.T) {
		for _, in := range []string{"-1", "abc", "1.5"} {
			_, err := ParseEnrollmentID(in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "input %q", in)
		}
	})
}

func TestParsePrincipal(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParsePrincipal("")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts opaque identifiers", func(t *testing.T) {
		p, err := ParsePrincipal("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
		require.NoError(t, err)
		assert.False(t, p.IsNil())
	})
}

func TestParseHash(t *testing.T) {
	t.Run("accepts 32 hex bytes", func(t *testing.T) {
		h, err := ParseHash(strings.Repeat("ab", HashSize))
		require.NoError(t, err)
		assert.False(t, h.IsZero())
		assert.Equal(t, strings.Repeat("ab", HashSize), h.String())
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseHash("")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParseHash("abcd")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-hex", func(t *testing.T) {
		_, err := ParseHash(strings.Repeat("zz", HashSize))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
