package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/pkg/config"
)

// DogLimitsFromConfig parte del preset configurado y aplica los límites sobrescritos.
func DogLimitsFromConfig(cfg config.DogLimitsConfig) (entity.DogLimits, error) {
	l, err := entity.DogLimitsForProfile(cfg.Profile)
	if err != nil {
		return entity.DogLimits{}, err
	}
	if cfg.AgeMin != nil {
		l.AgeMin = *cfg.AgeMin
	}
	if cfg.AgeMax != nil {
		l.AgeMax = *cfg.AgeMax
	}
	if cfg.HeightMin != nil {
		l.HeightMin = decimal.NewFromFloat(*cfg.HeightMin)
	}
	if cfg.HeightMax != nil {
		l.HeightMax = decimal.NewFromFloat(*cfg.HeightMax)
	}
	if cfg.WeightMin != nil {
		l.WeightMin = decimal.NewFromFloat(*cfg.WeightMin)
	}
	if cfg.WeightMax != nil {
		l.WeightMax = decimal.NewFromFloat(*cfg.WeightMax)
	}
	return l, nil
}
