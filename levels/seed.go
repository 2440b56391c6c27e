package levels

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// NewSessionSeed returns a fresh seed for a new session. The seed, not the
// geometry, is what peers exchange.
func NewSessionSeed() uint64 {
	id := uuid.New()
	return binary.LittleEndian.Uint64(id[:8]) ^ binary.LittleEndian.Uint64(id[8:])
}

// SeedFromString derives a stable seed from a session identifier such as a
// lobby UUID. Identifiers that are not UUIDs are hashed through uuid.NewSHA1.
func SeedFromString(s string) uint64 {
	id, err := uuid.Parse(s)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(s))
	}
	return binary.LittleEndian.Uint64(id[:8]) ^ binary.LittleEndian.Uint64(id[8:])
}
