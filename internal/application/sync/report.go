package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

// Counts cambios aplicados a un almacén para un tipo de entidad.
type Counts struct {
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// Total suma las filas escritas (altas, modificaciones y bajas).
func (c Counts) Total() int { return c.Added + c.Updated + c.Removed }

// Report resultado de una pasada de sincronización.
// Users/Dogs describen escrituras en el secundario; *ToPrimary solo las usa la política merge.
type Report struct {
	RunID          string    `json:"run_id"`
	Policy         string    `json:"policy"`
	Skipped        bool      `json:"skipped"`
	Users          Counts    `json:"users"`
	Dogs           Counts    `json:"dogs"`
	UsersToPrimary Counts    `json:"users_to_primary"`
	DogsToPrimary  Counts    `json:"dogs_to_primary"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// Duration tiempo total de la pasada.
func (r *Report) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// StoreCounts filas por tabla en un almacén.
type StoreCounts struct {
	Dialect string `json:"dialect"`
	Users   int    `json:"users"`
	Dogs    int    `json:"dogs"`
}

// VerifyReport compara el número de filas de ambos almacenes.
type VerifyReport struct {
	Primary   StoreCounts  `json:"primary"`
	Secondary *StoreCounts `json:"secondary,omitempty"`
	InSync    bool         `json:"in_sync"`
}

func countStore(ctx context.Context, s repository.Store) (StoreCounts, error) {
	users, err := s.Users().Count(ctx)
	if err != nil {
		return StoreCounts{}, fmt.Errorf("%s: %w", s.Dialect(), err)
	}
	dogs, err := s.Dogs().Count(ctx)
	if err != nil {
		return StoreCounts{}, fmt.Errorf("%s: %w", s.Dialect(), err)
	}
	return StoreCounts{Dialect: s.Dialect(), Users: users, Dogs: dogs}, nil
}

// Verify cuenta usuarios y perros en ambos almacenes. Sin secundario, InSync es true.
func (e *Engine) Verify(ctx context.Context) (*VerifyReport, error) {
	p, err := countStore(ctx, e.primary)
	if err != nil {
		return nil, fmt.Errorf("verify primary: %w", err)
	}
	out := &VerifyReport{Primary: p, InSync: true}
	if e.secondary == nil {
		return out, nil
	}
	s, err := countStore(ctx, e.secondary)
	if err != nil {
		return nil, fmt.Errorf("verify secondary: %w", err)
	}
	out.Secondary = &s
	out.InSync = p.Users == s.Users && p.Dogs == s.Dogs
	return out, nil
}
