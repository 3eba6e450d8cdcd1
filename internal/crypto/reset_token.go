package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-tours/internal/utils"
)

const (
	resetTokenBytes = 32

	// DefaultResetTokenDuration is how long a reset link stays usable.
	DefaultResetTokenDuration = 10 * time.Minute
)

type resetTokenGenerator struct {
	ttl    time.Duration
	now    func() time.Time
	random io.Reader
}

// NewResetTokenGenerator returns a [ResetTokenGenerator] whose tokens expire
// ttl after generation. now is the clock; nil means time.Now.
func NewResetTokenGenerator(ttl time.Duration, now func() time.Time) ResetTokenGenerator {
	if ttl <= 0 {
		ttl = DefaultResetTokenDuration
	}
	if now == nil {
		now = time.Now
	}
	return &resetTokenGenerator{ttl: ttl, now: now, random: rand.Reader}
}

func (g *resetTokenGenerator) Generate() (ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return ResetToken{}, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	raw := hex.EncodeToString(buf)
	return ResetToken{
		Raw:       raw,
		Hash:      HashResetToken(raw),
		ExpiresAt: g.now().Add(g.ttl),
	}, nil
}

// HashResetToken returns the stored form of a raw reset token.
func HashResetToken(raw string) string {
	return utils.SHA256Hex(raw)
}
