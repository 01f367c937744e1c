package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	orderNumberPrefix    = "SO"
	MaxOrderNumberLength = 50
)

// OrderNumberGenerator produces human-readable order numbers.
// Uniqueness is ultimately enforced by the store; callers retry on collision.
type OrderNumberGenerator interface {
	Next(at time.Time) string
}

// RandomOrderNumberGenerator yields numbers shaped like SO-20240115-9F2C41AB:
// the UTC date of the order followed by eight uppercase hex digits of a random UUID.
type RandomOrderNumberGenerator struct{}

// NewRandomOrderNumberGenerator creates the default generator
func NewRandomOrderNumberGenerator() *RandomOrderNumberGenerator {
	return &RandomOrderNumberGenerator{}
}

// Next returns a fresh order number for an order placed at the given time
func (g *RandomOrderNumberGenerator) Next(at time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return orderNumberPrefix + "-" + at.UTC().Format("20060102") + "-" + suffix
}
