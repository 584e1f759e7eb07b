package wire

import (
	"fmt"

	"github.com/google/uuid"
)

// Identifier is the protocol's 16-byte opaque identifier. Equality is
// bytewise; the canonical text form is the standard 8-4-4-4-12 hex
// grouping, parsed and formatted via google/uuid since the byte layout
// is identical to RFC 4122 text encoding even though the wire layer
// never validates version bits.
type Identifier [16]byte

// String renders the canonical 8-4-4-4-12 hex grouping.
func (id Identifier) String() string {
	return uuid.UUID(id).String()
}

// ParseIdentifier accepts the canonical hex-grouped form only.
func ParseIdentifier(s string) (Identifier, error) {
	if len(s) != 36 {
		return Identifier{}, fmt.Errorf("identifier %q is not in 8-4-4-4-12 form", s)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Identifier{}, err
	}
	return Identifier(u), nil
}

// Equal reports bytewise equality.
func (id Identifier) Equal(other Identifier) bool {
	return id == other
}

// IsZero reports whether id is the all-zero identifier.
func (id Identifier) IsZero() bool {
	return id == Identifier{}
}
