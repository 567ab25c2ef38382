package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
)

type FixtureRepository struct {
	mu        sync.RWMutex
	gamesByID map[string]fixture.Game
	idsByTeam map[string][]string
}

func NewFixtureRepository(games []fixture.Game) *FixtureRepository {
	r := &FixtureRepository{
		gamesByID: make(map[string]fixture.Game, len(games)),
		idsByTeam: make(map[string][]string),
	}
	for _, g := range games {
		r.put(g)
	}
	return r
}

func (r *FixtureRepository) ListByTeam(_ context.Context, teamID string) ([]fixture.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.idsByTeam[teamID]
	out := make([]fixture.Game, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.gamesByID[id].Clone())
	}

	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, gameID string) (fixture.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.gamesByID[gameID]
	if !ok {
		return fixture.Game{}, false, nil
	}
	return g.Clone(), true, nil
}

func (r *FixtureRepository) Upsert(_ context.Context, g fixture.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(g)
	return nil
}

func (r *FixtureRepository) UpdateAvailability(_ context.Context, gameID string, availability map[string]bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.gamesByID[gameID]
	if !ok {
		return nil
	}
	g.Availability = maps.Clone(availability)
	if g.Availability == nil {
		g.Availability = map[string]bool{}
	}
	r.gamesByID[gameID] = g
	return nil
}

func (r *FixtureRepository) Delete(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.gamesByID[gameID]
	if !ok {
		return nil
	}
	delete(r.gamesByID, gameID)
	r.idsByTeam[existing.TeamID] = removeID(r.idsByTeam[existing.TeamID], gameID)
	return nil
}

func (r *FixtureRepository) put(g fixture.Game) {
	id := strings.TrimSpace(g.ID)
	if id == "" {
		return
	}
	if _, ok := r.gamesByID[id]; !ok {
		r.idsByTeam[g.TeamID] = append(r.idsByTeam[g.TeamID], id)
	}
	r.gamesByID[id] = g.Clone()
}
