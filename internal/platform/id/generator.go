package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for teams, players, games and live sessions.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues time-ordered UUIDv7 values so ids sort by creation.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return v.String(), nil
}

// Valid reports whether v parses as a UUID.
func Valid(v string) bool {
	return uuid.Validate(v) == nil
}
