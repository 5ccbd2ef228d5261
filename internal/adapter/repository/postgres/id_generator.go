package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues document and event IDs. ULIDs sort by creation time,
// which keeps keyset pagination over invoices and payments stable and gives
// the ledger tiebreaker a deterministic order for same-day documents.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID in its canonical 26-character form.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
