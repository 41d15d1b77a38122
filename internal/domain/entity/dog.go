package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Géneros válidos para Dog.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// IsValidGender indica si g es "Male" o "Female".
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// Longitudes máximas de las columnas de texto de dog.
const (
	MaxNameLen           = 100
	MaxBreedLen          = 100
	MaxColorLen          = 100
	MaxVaccinesLen       = 500
	MaxDiseasesLen       = 500
	MaxMedicalHistoryLen = 1000
	MaxPersonalityLen    = 500
)

// Dog representa un perro en adopción. Altura en cm y peso en kg.
// La clave natural entre almacenes es (Name, Breed, Age): los IDs pueden diferir.
type Dog struct {
	ID             int64
	Name           string
	Breed          string
	Age            int
	Color          string
	Height         decimal.Decimal
	Weight         decimal.Decimal
	Gender         string
	Vaccines       string
	Diseases       string
	MedicalHistory string
	Personality    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DogKey clave natural de un perro.
type DogKey struct {
	Name  string
	Breed string
	Age   int
}

// Key devuelve la clave natural del perro.
func (d *Dog) Key() DogKey {
	return DogKey{Name: d.Name, Breed: d.Breed, Age: d.Age}
}

// CopyFrom copia todos los campos de src excepto el ID.
func (d *Dog) CopyFrom(src *Dog) {
	d.Name = src.Name
	d.Breed = src.Breed
	d.Age = src.Age
	d.Color = src.Color
	d.Height = src.Height
	d.Weight = src.Weight
	d.Gender = src.Gender
	d.Vaccines = src.Vaccines
	d.Diseases = src.Diseases
	d.MedicalHistory = src.MedicalHistory
	d.Personality = src.Personality
	d.CreatedAt = src.CreatedAt
	d.UpdatedAt = src.UpdatedAt
}

// Clone devuelve una copia independiente, ID incluido.
func (d *Dog) Clone() *Dog {
	c := &Dog{ID: d.ID}
	c.CopyFrom(d)
	return c
}

// SameContent compara los campos de negocio ignorando ID y timestamps.
func (d *Dog) SameContent(o *Dog) bool {
	return d.Name == o.Name &&
		d.Breed == o.Breed &&
		d.Age == o.Age &&
		d.Color == o.Color &&
		d.Height.Equal(o.Height) &&
		d.Weight.Equal(o.Weight) &&
		d.Gender == o.Gender &&
		d.Vaccines == o.Vaccines &&
		d.Diseases == o.Diseases &&
		d.MedicalHistory == o.MedicalHistory &&
		d.Personality == o.Personality
}
