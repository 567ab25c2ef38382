package fixture

import "context"

// Repository exposes scheduled game persistence operations.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	Upsert(ctx context.Context, game Game) error
	UpdateAvailability(ctx context.Context, gameID string, availability map[string]bool) error
	Delete(ctx context.Context, gameID string) error
}
