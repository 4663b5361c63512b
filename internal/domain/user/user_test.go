package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_MatchesDisplayName(t *testing.T) {
	u := &User{DisplayName: "Alice"}

	for _, q := range []string{"alice", "ALICE", "Alice", "aLiCe"} {
		assert.True(t, u.MatchesDisplayName(q), q)
	}
	assert.False(t, u.MatchesDisplayName("Alic"))
	assert.False(t, u.MatchesDisplayName(" alice"), "no trimming on the match key")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "bob@x.com", NormalizeEmail("  Bob@X.com "))
	assert.Equal(t, "Bob Smith", NormalizeDisplayName(" Bob Smith\t"))
}

func TestMalformedRecordError(t *testing.T) {
	err := MalformedRecordError("u1", "displayName")
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), `"u1"`)
}
