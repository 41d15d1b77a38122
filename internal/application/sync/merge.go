package sync

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

// emailKey clave natural de un usuario: el email sin distinguir mayúsculas.
// Un Caser no es seguro entre goroutines, por eso se crea en cada llamada.
func emailKey(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// merge reconcilia en ambos sentidos por clave natural. Si la clave existe en los dos
// almacenes gana el updated_at más reciente; en empate gana el secundario.
// Cada almacén usa su propia transacción; un error revierte las dos.
func (e *Engine) merge(ctx context.Context, rep *Report) error {
	if err := e.secondary.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("esquema del secundario: %w", err)
	}
	return e.primary.RunInTx(ctx, func(pu repository.UserRepository, pd repository.DogRepository) error {
		return e.secondary.RunInTx(ctx, func(su repository.UserRepository, sd repository.DogRepository) error {
			if err := mergeUsers(ctx, pu, su, rep); err != nil {
				return err
			}
			return mergeDogs(ctx, pd, sd, rep)
		})
	})
}

func indexUsers(list []*entity.User) (map[string]*entity.User, []string) {
	idx := make(map[string]*entity.User, len(list))
	order := make([]string, 0, len(list))
	for _, u := range list {
		k := emailKey(u.Email)
		prev, ok := idx[k]
		if !ok {
			order = append(order, k)
		}
		if !ok || u.UpdatedAt.After(prev.UpdatedAt) {
			idx[k] = u
		}
	}
	return idx, order
}

func mergeUsers(ctx context.Context, pu, su repository.UserRepository, rep *Report) error {
	primaryList, err := pu.List(ctx)
	if err != nil {
		return fmt.Errorf("leer usuarios del primario: %w", err)
	}
	secondaryList, err := su.List(ctx)
	if err != nil {
		return fmt.Errorf("leer usuarios del secundario: %w", err)
	}
	pIdx, pOrder := indexUsers(primaryList)
	sIdx, sOrder := indexUsers(secondaryList)

	for _, k := range pOrder {
		p := pIdx[k]
		s, ok := sIdx[k]
		switch {
		case !ok:
			row := p.Clone()
			row.ID = 0
			if err := su.Create(ctx, row); err != nil {
				return fmt.Errorf("copiar usuario %s al secundario: %w", p.Email, err)
			}
			rep.Users.Added++
		case p.SameContent(s):
			rep.Users.Unchanged++
		case p.UpdatedAt.After(s.UpdatedAt):
			s.CopyFrom(p)
			if err := su.Update(ctx, s); err != nil {
				return fmt.Errorf("actualizar usuario %s en el secundario: %w", p.Email, err)
			}
			rep.Users.Updated++
		default:
			p.CopyFrom(s)
			if err := pu.Update(ctx, p); err != nil {
				return fmt.Errorf("actualizar usuario %s en el primario: %w", s.Email, err)
			}
			rep.UsersToPrimary.Updated++
		}
	}
	for _, k := range sOrder {
		if _, ok := pIdx[k]; ok {
			continue
		}
		row := sIdx[k].Clone()
		row.ID = 0
		if err := pu.Create(ctx, row); err != nil {
			return fmt.Errorf("copiar usuario %s al primario: %w", row.Email, err)
		}
		rep.UsersToPrimary.Added++
	}
	return nil
}

func indexDogs(list []*entity.Dog) (map[entity.DogKey]*entity.Dog, []entity.DogKey) {
	idx := make(map[entity.DogKey]*entity.Dog, len(list))
	order := make([]entity.DogKey, 0, len(list))
	for _, d := range list {
		k := d.Key()
		prev, ok := idx[k]
		if !ok {
			order = append(order, k)
		}
		if !ok || d.UpdatedAt.After(prev.UpdatedAt) {
			idx[k] = d
		}
	}
	return idx, order
}

func mergeDogs(ctx context.Context, pd, sd repository.DogRepository, rep *Report) error {
	primaryList, err := pd.List(ctx)
	if err != nil {
		return fmt.Errorf("leer perros del primario: %w", err)
	}
	secondaryList, err := sd.List(ctx)
	if err != nil {
		return fmt.Errorf("leer perros del secundario: %w", err)
	}
	pIdx, pOrder := indexDogs(primaryList)
	sIdx, sOrder := indexDogs(secondaryList)

	for _, k := range pOrder {
		p := pIdx[k]
		s, ok := sIdx[k]
		switch {
		case !ok:
			row := p.Clone()
			row.ID = 0
			if err := sd.Create(ctx, row); err != nil {
				return fmt.Errorf("copiar perro %q al secundario: %w", p.Name, err)
			}
			rep.Dogs.Added++
		case p.SameContent(s):
			rep.Dogs.Unchanged++
		case p.UpdatedAt.After(s.UpdatedAt):
			s.CopyFrom(p)
			if err := sd.Update(ctx, s); err != nil {
				return fmt.Errorf("actualizar perro %q en el secundario: %w", p.Name, err)
			}
			rep.Dogs.Updated++
		default:
			p.CopyFrom(s)
			if err := pd.Update(ctx, p); err != nil {
				return fmt.Errorf("actualizar perro %q en el primario: %w", s.Name, err)
			}
			rep.DogsToPrimary.Updated++
		}
	}
	for _, k := range sOrder {
		if _, ok := pIdx[k]; ok {
			continue
		}
		row := sIdx[k].Clone()
		row.ID = 0
		if err := pd.Create(ctx, row); err != nil {
			return fmt.Errorf("copiar perro %q al primario: %w", row.Name, err)
		}
		rep.DogsToPrimary.Added++
	}
	return nil
}
