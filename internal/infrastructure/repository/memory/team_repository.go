package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	order []string
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{teams: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		r.put(item)
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.teams[id])
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(item)
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[teamID]; !ok {
		return nil
	}
	delete(r.teams, teamID)
	r.order = removeID(r.order, teamID)
	return nil
}

func (r *TeamRepository) put(item team.Team) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return
	}
	if _, ok := r.teams[id]; !ok {
		r.order = append(r.order, id)
	}
	r.teams[id] = item
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
