package crypto

import (
	"fmt"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() (string, error)
}

// UUIDGenerator issues version 7 UUIDs. Their leading timestamp makes ids
// created later sort after earlier ones, which keeps the id tie-break in
// list ordering consistent with creation order.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}
