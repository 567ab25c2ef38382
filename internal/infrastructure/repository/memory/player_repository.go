package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/player"
)

type PlayerRepository struct {
	mu          sync.RWMutex
	playersByID map[string]player.Player
	idsByTeam   map[string][]string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		playersByID: make(map[string]player.Player, len(players)),
		idsByTeam:   make(map[string][]string),
	}
	for _, p := range players {
		r.put(p)
	}
	return r
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID, search string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.idsByTeam[teamID]
	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.playersByID[id])
	}

	return player.Filter(out, search), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.playersByID[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(p)
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.playersByID[playerID]
	if !ok {
		return nil
	}
	delete(r.playersByID, playerID)
	r.idsByTeam[existing.TeamID] = removeID(r.idsByTeam[existing.TeamID], playerID)
	return nil
}

func (r *PlayerRepository) put(p player.Player) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return
	}

	if existing, ok := r.playersByID[id]; ok {
		if existing.TeamID != p.TeamID {
			r.idsByTeam[existing.TeamID] = removeID(r.idsByTeam[existing.TeamID], id)
			r.idsByTeam[p.TeamID] = append(r.idsByTeam[p.TeamID], id)
		}
	} else {
		r.idsByTeam[p.TeamID] = append(r.idsByTeam[p.TeamID], id)
	}
	if p.JerseyNumber != nil {
		n := *p.JerseyNumber
		p.JerseyNumber = &n
	}
	r.playersByID[id] = p
}
