package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenGenerator_Generate(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := NewResetTokenGenerator(10*time.Minute, func() time.Time { return now })

	token, err := g.Generate()
	require.NoError(t, err)

	raw, err := hex.DecodeString(token.Raw)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Len(t, token.Raw, 64)

	sum := sha256.Sum256([]byte(token.Raw))
	assert.Equal(t, hex.EncodeToString(sum[:]), token.Hash)
	assert.Equal(t, token.Hash, HashResetToken(token.Raw))
	assert.NotEqual(t, token.Raw, token.Hash)

	assert.Equal(t, now.Add(10*time.Minute), token.ExpiresAt)
}

func TestResetTokenGenerator_Unique(t *testing.T) {
	g := NewResetTokenGenerator(time.Minute, nil)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := g.Generate()
		require.NoError(t, err)
		_, dup := seen[token.Raw]
		require.False(t, dup)
		seen[token.Raw] = struct{}{}
	}
}

func TestResetTokenGenerator_Defaults(t *testing.T) {
	g := NewResetTokenGenerator(0, nil).(*resetTokenGenerator)

	assert.Equal(t, DefaultResetTokenDuration, g.ttl)
	assert.NotNil(t, g.now)
}

func TestResetTokenGenerator_DeterministicWithFixedSource(t *testing.T) {
	g := &resetTokenGenerator{
		ttl:    time.Minute,
		now:    time.Now,
		random: bytes.NewReader(bytes.Repeat([]byte{0xAB}, 32)),
	}

	token, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(bytes.Repeat([]byte{0xAB}, 32)), token.Raw)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestResetTokenGenerator_RandomFailure(t *testing.T) {
	g := &resetTokenGenerator{ttl: time.Minute, now: time.Now, random: failingReader{}}

	_, err := g.Generate()
	assert.ErrorIs(t, err, ErrRandomSource)
}
