package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DogLimits rangos permitidos (inclusive) para edad, altura y peso al escribir un Dog.
type DogLimits struct {
	AgeMin    int
	AgeMax    int
	HeightMin decimal.Decimal // cm
	HeightMax decimal.Decimal // cm
	WeightMin decimal.Decimal // kg
	WeightMax decimal.Decimal // kg
}

// ExtendedDogLimits 0–35 años, 7.5–150 cm, 0.25–200 kg.
func ExtendedDogLimits() DogLimits {
	return DogLimits{
		AgeMin:    0,
		AgeMax:    35,
		HeightMin: decimal.RequireFromString("7.5"),
		HeightMax: decimal.NewFromInt(150),
		WeightMin: decimal.RequireFromString("0.25"),
		WeightMax: decimal.NewFromInt(200),
	}
}

// StandardDogLimits 0–30 años, 0–200 cm, 0–100 kg.
func StandardDogLimits() DogLimits {
	return DogLimits{
		AgeMin:    0,
		AgeMax:    30,
		HeightMin: decimal.Zero,
		HeightMax: decimal.NewFromInt(200),
		WeightMin: decimal.Zero,
		WeightMax: decimal.NewFromInt(100),
	}
}

// DogLimitsForProfile devuelve el preset por nombre ("extended" o "standard").
func DogLimitsForProfile(profile string) (DogLimits, error) {
	switch profile {
	case "extended", "":
		return ExtendedDogLimits(), nil
	case "standard":
		return StandardDogLimits(), nil
	}
	return DogLimits{}, fmt.Errorf("perfil de límites desconocido: %q", profile)
}

// AgeError devuelve el mensaje de error para age, o "" si está en rango.
func (l DogLimits) AgeError(age int) string {
	if age < l.AgeMin || age > l.AgeMax {
		return fmt.Sprintf("age debe estar entre %d y %d años", l.AgeMin, l.AgeMax)
	}
	return ""
}

// HeightError devuelve el mensaje de error para height, o "" si está en rango.
func (l DogLimits) HeightError(h decimal.Decimal) string {
	if h.LessThan(l.HeightMin) || h.GreaterThan(l.HeightMax) {
		return fmt.Sprintf("height debe estar entre %scm y %scm", l.HeightMin, l.HeightMax)
	}
	return ""
}

// WeightError devuelve el mensaje de error para weight, o "" si está en rango.
func (l DogLimits) WeightError(w decimal.Decimal) string {
	if w.LessThan(l.WeightMin) || w.GreaterThan(l.WeightMax) {
		return fmt.Sprintf("weight debe estar entre %skg y %skg", l.WeightMin, l.WeightMax)
	}
	return ""
}
