// Package sync reconcilia las tablas user y dog entre el almacén primario y el secundario.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
	"github.com/jhoicas/adoptease-api/pkg/logger"
)

// Políticas de sincronización.
const (
	// PolicyMirror upsert por ID del primario al secundario, borrando lo que sobra.
	PolicyMirror = "mirror"
	// PolicyMerge merge bidireccional por clave natural, gana el updated_at más reciente.
	PolicyMerge = "merge"
)

// Options configuración del motor.
type Options struct {
	Policy string
	// ResetSecondary elimina y recrea las tablas del secundario antes de copiar (solo mirror).
	ResetSecondary bool
}

// Engine ejecuta pasadas completas de sincronización.
type Engine struct {
	primary   repository.Store
	secondary repository.Store
	opts      Options
	log       *logger.Logger
	now       func() time.Time
}

// NewEngine construye el motor. secondary puede ser nil: Sync queda como no-op.
func NewEngine(primary, secondary repository.Store, opts Options, log *logger.Logger) (*Engine, error) {
	if primary == nil {
		return nil, fmt.Errorf("sync: almacén primario requerido")
	}
	switch opts.Policy {
	case "":
		opts.Policy = PolicyMirror
	case PolicyMirror, PolicyMerge:
	default:
		return nil, fmt.Errorf("sync: política desconocida %q", opts.Policy)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		primary:   primary,
		secondary: secondary,
		opts:      opts,
		log:       log.Child("sync"),
		now:       time.Now,
	}, nil
}

// Sync ejecuta una pasada completa. Cualquier error revierte la transacción abierta.
func (e *Engine) Sync(ctx context.Context) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), Policy: e.opts.Policy, StartedAt: e.now().UTC()}
	log := e.log.With().Str("run_id", rep.RunID).Str("policy", rep.Policy).Logger()

	if e.secondary == nil {
		rep.Skipped = true
		rep.FinishedAt = e.now().UTC()
		log.Info().Msg("sin almacén secundario configurado; sincronización omitida")
		return rep, nil
	}

	var err error
	switch e.opts.Policy {
	case PolicyMerge:
		err = e.merge(ctx, rep)
	default:
		err = e.mirror(ctx, rep)
	}
	rep.FinishedAt = e.now().UTC()
	if err != nil {
		log.Error().Err(err).Msg("sincronización fallida; cambios revertidos")
		return nil, err
	}

	ev := log.Info().
		Int("users_added", rep.Users.Added).Int("users_updated", rep.Users.Updated).Int("users_removed", rep.Users.Removed).
		Int("dogs_added", rep.Dogs.Added).Int("dogs_updated", rep.Dogs.Updated).Int("dogs_removed", rep.Dogs.Removed).
		Dur("duration", rep.Duration())
	if e.opts.Policy == PolicyMerge {
		ev = ev.Int("users_to_primary", rep.UsersToPrimary.Total()).Int("dogs_to_primary", rep.DogsToPrimary.Total())
	}
	ev.Msg("sincronización completada")

	if v, verr := e.Verify(ctx); verr == nil {
		log.Info().
			Int("primary_users", v.Primary.Users).Int("primary_dogs", v.Primary.Dogs).
			Int("secondary_users", v.Secondary.Users).Int("secondary_dogs", v.Secondary.Dogs).
			Bool("in_sync", v.InSync).Msg("verificación")
	}
	return rep, nil
}

// mirror copia el primario sobre el secundario por ID: inserta, sobrescribe y elimina sobrantes.
// Todo ocurre en una transacción del secundario con un único commit.
func (e *Engine) mirror(ctx context.Context, rep *Report) error {
	users, err := e.primary.Users().List(ctx)
	if err != nil {
		return fmt.Errorf("leer usuarios del primario: %w", err)
	}
	dogs, err := e.primary.Dogs().List(ctx)
	if err != nil {
		return fmt.Errorf("leer perros del primario: %w", err)
	}

	if e.opts.ResetSecondary {
		err = e.secondary.ResetSchema(ctx)
	} else {
		err = e.secondary.EnsureSchema(ctx)
	}
	if err != nil {
		return fmt.Errorf("esquema del secundario: %w", err)
	}

	now := e.now().UTC()
	return e.secondary.RunInTx(ctx, func(su repository.UserRepository, sd repository.DogRepository) error {
		if err := mirrorUsers(ctx, users, su, now, &rep.Users); err != nil {
			return err
		}
		return mirrorDogs(ctx, dogs, sd, now, &rep.Dogs)
	})
}

func mirrorUsers(ctx context.Context, src []*entity.User, dst repository.UserRepository, now time.Time, c *Counts) error {
	existing, err := dst.List(ctx)
	if err != nil {
		return fmt.Errorf("leer usuarios del secundario: %w", err)
	}
	byID := make(map[int64]*entity.User, len(existing))
	for _, u := range existing {
		byID[u.ID] = u
	}
	wanted := make(map[int64]bool, len(src))
	for _, u := range src {
		wanted[u.ID] = true
	}

	// Primero todas las bajas: libera emails que otra fila va a reutilizar.
	for _, u := range existing {
		if !wanted[u.ID] {
			if err := dst.Delete(ctx, u.ID); err != nil {
				return fmt.Errorf("eliminar usuario %d del secundario: %w", u.ID, err)
			}
			c.Removed++
		}
	}
	reinsert := map[int64]bool{}
	for _, u := range src {
		if cur, ok := byID[u.ID]; ok && cur.Email != u.Email {
			if err := dst.Delete(ctx, u.ID); err != nil {
				return fmt.Errorf("eliminar usuario %d del secundario: %w", u.ID, err)
			}
			reinsert[u.ID] = true
		}
	}

	for _, u := range src {
		row := u.Clone()
		row.UpdatedAt = now
		_, present := byID[u.ID]
		if present && !reinsert[u.ID] {
			if err := dst.Update(ctx, row); err != nil {
				return fmt.Errorf("actualizar usuario %d en el secundario: %w", u.ID, err)
			}
			c.Updated++
			continue
		}
		if err := dst.Create(ctx, row); err != nil {
			return fmt.Errorf("insertar usuario %d en el secundario: %w", u.ID, err)
		}
		if present {
			c.Updated++
		} else {
			c.Added++
		}
	}
	return nil
}

func mirrorDogs(ctx context.Context, src []*entity.Dog, dst repository.DogRepository, now time.Time, c *Counts) error {
	existing, err := dst.List(ctx)
	if err != nil {
		return fmt.Errorf("leer perros del secundario: %w", err)
	}
	byID := make(map[int64]bool, len(existing))
	for _, d := range existing {
		byID[d.ID] = true
	}
	wanted := make(map[int64]bool, len(src))
	for _, d := range src {
		wanted[d.ID] = true
	}
	for _, d := range existing {
		if !wanted[d.ID] {
			if err := dst.Delete(ctx, d.ID); err != nil {
				return fmt.Errorf("eliminar perro %d del secundario: %w", d.ID, err)
			}
			c.Removed++
		}
	}
	for _, d := range src {
		row := d.Clone()
		row.UpdatedAt = now
		if byID[d.ID] {
			if err := dst.Update(ctx, row); err != nil {
				return fmt.Errorf("actualizar perro %d en el secundario: %w", d.ID, err)
			}
			c.Updated++
			continue
		}
		if err := dst.Create(ctx, row); err != nil {
			return fmt.Errorf("insertar perro %d en el secundario: %w", d.ID, err)
		}
		c.Added++
	}
	return nil
}
