package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces entry identifiers. Implementations must return values
// unique for the lifetime of the process; a collision is a defect.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID implements IDGenerator.
func (f IDGeneratorFunc) NewID() string {
	return f()
}

// TimestampIDs generates `id-<unix millis>-<random>` identifiers. The random
// suffix is the first 48 random bits of a v4 UUID.
type TimestampIDs struct {
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// NewID implements IDGenerator.
func (g TimestampIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("id-%d-%s", now().UnixMilli(), suffix)
}

// DefaultIDs is the generator used when none is injected.
var DefaultIDs IDGenerator = TimestampIDs{}
