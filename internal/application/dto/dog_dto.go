package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var errNotANumber = errors.New("no es un número")

// Límites del literal numérico: evitan reescalar decimales con exponentes enormes.
const (
	maxNumberLen   = 32
	maxNumberScale = 10
)

// NumberInput acepta un número JSON o un string numérico ("12.5").
// Set indica que la clave venía en el cuerpo, aunque fuera null.
type NumberInput struct {
	Raw string
	Set bool
}

// UnmarshalJSON guarda el literal sin interpretarlo; la conversión la hace el caso de uso.
func (n *NumberInput) UnmarshalJSON(b []byte) error {
	n.Set = true
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		n.Raw = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.Raw = s
	default:
		n.Raw = string(b)
	}
	return nil
}

// Num construye un NumberInput presente a partir de un literal.
func Num(raw string) NumberInput {
	return NumberInput{Raw: raw, Set: true}
}

// Decimal interpreta el valor como decimal exacto. Rechaza literales largos y
// exponentes fuera de ±maxNumberScale antes de cualquier comparación.
func (n NumberInput) Decimal() (decimal.Decimal, error) {
	raw := strings.TrimSpace(n.Raw)
	if raw == "" || len(raw) > maxNumberLen {
		return decimal.Zero, errNotANumber
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errNotANumber
	}
	if exp := d.Exponent(); exp > maxNumberScale || exp < -maxNumberScale {
		return decimal.Zero, errNotANumber
	}
	return d, nil
}

// Int interpreta el valor como entero; admite "3" y 3.0 pero no 3.5.
func (n NumberInput) Int() (int, error) {
	d, err := n.Decimal()
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, errNotANumber
	}
	i := d.BigInt()
	if !i.IsInt64() || i.Int64() > math.MaxInt32 || i.Int64() < math.MinInt32 {
		return 0, errNotANumber
	}
	return int(i.Int64()), nil
}

// CreateDogRequest alta de un perro (admin). Age, Height y Weight son obligatorios.
type CreateDogRequest struct {
	Name           string      `json:"name"`
	Breed          string      `json:"breed"`
	Age            NumberInput `json:"age" swaggertype:"number"`
	Color          string      `json:"color"`
	Height         NumberInput `json:"height" swaggertype:"number"`
	Weight         NumberInput `json:"weight" swaggertype:"number"`
	Gender         string      `json:"gender" enums:"Male,Female"`
	Vaccines       string      `json:"vaccines"`
	Diseases       string      `json:"diseases"`
	MedicalHistory string      `json:"medical_history"`
	Personality    string      `json:"personality"`
}

// UpdateDogRequest actualización parcial (admin): solo se aplican las claves presentes.
type UpdateDogRequest struct {
	Name           *string     `json:"name"`
	Breed          *string     `json:"breed"`
	Age            NumberInput `json:"age" swaggertype:"number"`
	Color          *string     `json:"color"`
	Height         NumberInput `json:"height" swaggertype:"number"`
	Weight         NumberInput `json:"weight" swaggertype:"number"`
	Gender         *string     `json:"gender" enums:"Male,Female"`
	Vaccines       *string     `json:"vaccines"`
	Diseases       *string     `json:"diseases"`
	MedicalHistory *string     `json:"medical_history"`
	Personality    *string     `json:"personality"`
}

// ExpertUpdateDogRequest campos médicos y físicos que puede tocar un experto.
type ExpertUpdateDogRequest struct {
	Vaccines       *string     `json:"vaccines"`
	Diseases       *string     `json:"diseases"`
	MedicalHistory *string     `json:"medical_history"`
	Personality    *string     `json:"personality"`
	Color          *string     `json:"color"`
	Height         NumberInput `json:"height" swaggertype:"number"`
	Weight         NumberInput `json:"weight" swaggertype:"number"`
}

// ExpertDogResponse vista del experto (sin timestamps).
type ExpertDogResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Breed          string  `json:"breed"`
	Age            int     `json:"age"`
	Color          string  `json:"color"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	Gender         string  `json:"gender"`
	Vaccines       string  `json:"vaccines"`
	Diseases       string  `json:"diseases"`
	MedicalHistory string  `json:"medical_history"`
	Personality    string  `json:"personality"`
}

// CustomerDogResponse vista pública para adoptantes.
type CustomerDogResponse struct {
	ExpertDogResponse
	CreatedAt time.Time `json:"created_at"`
}

// AdminDogResponse vista completa.
type AdminDogResponse struct {
	ExpertDogResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminDogListResponse listado para admin.
type AdminDogListResponse struct {
	Dogs []AdminDogResponse `json:"dogs"`
}

// ExpertDogListResponse listado para expertos.
type ExpertDogListResponse struct {
	Dogs []ExpertDogResponse `json:"dogs"`
}

// CustomerDogListResponse listado para clientes.
type CustomerDogListResponse struct {
	Dogs []CustomerDogResponse `json:"dogs"`
}

// DogMutationResponse resultado de crear o actualizar un perro.
type DogMutationResponse struct {
	Message string           `json:"message"`
	Dog     AdminDogResponse `json:"dog"`
}
