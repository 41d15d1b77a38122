package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

// DogUseCase gestiona el alta, edición y consulta de perros según el rol.
type DogUseCase struct {
	repo   repository.DogRepository
	limits entity.DogLimits
	now    func() time.Time
}

// NewDogUseCase construye el caso de uso con los límites de medidas vigentes.
func NewDogUseCase(repo repository.DogRepository, limits entity.DogLimits) *DogUseCase {
	return &DogUseCase{repo: repo, limits: limits, now: time.Now}
}

// Create da de alta un perro validando todos los campos.
func (uc *DogUseCase) Create(ctx context.Context, in dto.CreateDogRequest) (*dto.DogMutationResponse, error) {
	verr := &domain.ValidationError{}
	dog := &entity.Dog{
		Name:           strings.TrimSpace(in.Name),
		Breed:          strings.TrimSpace(in.Breed),
		Color:          strings.TrimSpace(in.Color),
		Gender:         strings.TrimSpace(in.Gender),
		Vaccines:       in.Vaccines,
		Diseases:       in.Diseases,
		MedicalHistory: in.MedicalHistory,
		Personality:    in.Personality,
	}
	requiredText(verr, "name", dog.Name, entity.MaxNameLen)
	requiredText(verr, "breed", dog.Breed, entity.MaxBreedLen)
	requiredText(verr, "color", dog.Color, entity.MaxColorLen)
	checkGender(verr, dog.Gender)
	checkFreeText(verr, dog)

	if age, ok := uc.age(verr, in.Age, true); ok {
		dog.Age = age
	}
	if h, ok := uc.height(verr, in.Height, true); ok {
		dog.Height = h
	}
	if w, ok := uc.weight(verr, in.Weight, true); ok {
		dog.Weight = w
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	dog.CreatedAt, dog.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, dog); err != nil {
		return nil, err
	}
	return &dto.DogMutationResponse{Message: "Perro agregado correctamente", Dog: toAdminDog(dog)}, nil
}

// AdminUpdate aplica una actualización parcial: solo cambian las claves presentes.
func (uc *DogUseCase) AdminUpdate(ctx context.Context, id int64, in dto.UpdateDogRequest) (*dto.DogMutationResponse, error) {
	dog, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	if in.Name != nil {
		dog.Name = strings.TrimSpace(*in.Name)
		requiredText(verr, "name", dog.Name, entity.MaxNameLen)
	}
	if in.Breed != nil {
		dog.Breed = strings.TrimSpace(*in.Breed)
		requiredText(verr, "breed", dog.Breed, entity.MaxBreedLen)
	}
	if in.Color != nil {
		dog.Color = strings.TrimSpace(*in.Color)
		requiredText(verr, "color", dog.Color, entity.MaxColorLen)
	}
	if in.Gender != nil {
		dog.Gender = strings.TrimSpace(*in.Gender)
		checkGender(verr, dog.Gender)
	}
	applyMedical(dog, in.Vaccines, in.Diseases, in.MedicalHistory, in.Personality)
	checkFreeText(verr, dog)
	if age, ok := uc.age(verr, in.Age, false); ok {
		dog.Age = age
	}
	if h, ok := uc.height(verr, in.Height, false); ok {
		dog.Height = h
	}
	if w, ok := uc.weight(verr, in.Weight, false); ok {
		dog.Weight = w
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return uc.save(ctx, dog)
}

// ExpertUpdate permite al experto cambiar datos médicos, color, altura y peso.
func (uc *DogUseCase) ExpertUpdate(ctx context.Context, id int64, in dto.ExpertUpdateDogRequest) (*dto.DogMutationResponse, error) {
	dog, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	if in.Color != nil {
		dog.Color = strings.TrimSpace(*in.Color)
		requiredText(verr, "color", dog.Color, entity.MaxColorLen)
	}
	applyMedical(dog, in.Vaccines, in.Diseases, in.MedicalHistory, in.Personality)
	checkFreeText(verr, dog)
	if h, ok := uc.height(verr, in.Height, false); ok {
		dog.Height = h
	}
	if w, ok := uc.weight(verr, in.Weight, false); ok {
		dog.Weight = w
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return uc.save(ctx, dog)
}

// Delete elimina un perro por ID.
func (uc *DogUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrDogNotFound
		}
		return err
	}
	return nil
}

// ListAdmin vista completa con timestamps.
func (uc *DogUseCase) ListAdmin(ctx context.Context) (*dto.AdminDogListResponse, error) {
	dogs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.AdminDogListResponse{Dogs: make([]dto.AdminDogResponse, 0, len(dogs))}
	for _, d := range dogs {
		out.Dogs = append(out.Dogs, toAdminDog(d))
	}
	return out, nil
}

// ListExpert vista sin timestamps.
func (uc *DogUseCase) ListExpert(ctx context.Context) (*dto.ExpertDogListResponse, error) {
	dogs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ExpertDogListResponse{Dogs: make([]dto.ExpertDogResponse, 0, len(dogs))}
	for _, d := range dogs {
		out.Dogs = append(out.Dogs, toExpertDog(d))
	}
	return out, nil
}

// ListCustomer vista de adopción con fecha de alta.
func (uc *DogUseCase) ListCustomer(ctx context.Context) (*dto.CustomerDogListResponse, error) {
	dogs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerDogListResponse{Dogs: make([]dto.CustomerDogResponse, 0, len(dogs))}
	for _, d := range dogs {
		out.Dogs = append(out.Dogs, dto.CustomerDogResponse{ExpertDogResponse: toExpertDog(d), CreatedAt: d.CreatedAt})
	}
	return out, nil
}

func (uc *DogUseCase) load(ctx context.Context, id int64) (*entity.Dog, error) {
	dog, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dog == nil {
		return nil, domain.ErrDogNotFound
	}
	return dog, nil
}

func (uc *DogUseCase) save(ctx context.Context, dog *entity.Dog) (*dto.DogMutationResponse, error) {
	dog.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, dog); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDogNotFound
		}
		return nil, err
	}
	return &dto.DogMutationResponse{Message: "Perro actualizado correctamente", Dog: toAdminDog(dog)}, nil
}

// present informa si el campo numérico debe procesarse; los obligatorios ausentes se reportan.
func present(verr *domain.ValidationError, field string, n dto.NumberInput, required bool) bool {
	if !n.Set || strings.TrimSpace(n.Raw) == "" {
		if required || n.Set {
			verr.Add(field, field+" es obligatorio")
		}
		return false
	}
	return true
}

func (uc *DogUseCase) age(verr *domain.ValidationError, n dto.NumberInput, required bool) (int, bool) {
	if !present(verr, "age", n, required) {
		return 0, false
	}
	age, err := n.Int()
	if err != nil {
		verr.Add("age", "age debe ser un número entero")
		return 0, false
	}
	if msg := uc.limits.AgeError(age); msg != "" {
		verr.Add("age", msg)
		return 0, false
	}
	return age, true
}

func (uc *DogUseCase) height(verr *domain.ValidationError, n dto.NumberInput, required bool) (decimal.Decimal, bool) {
	if !present(verr, "height", n, required) {
		return decimal.Zero, false
	}
	h, err := n.Decimal()
	if err != nil {
		verr.Add("height", "height debe ser un número")
		return decimal.Zero, false
	}
	if msg := uc.limits.HeightError(h); msg != "" {
		verr.Add("height", msg)
		return decimal.Zero, false
	}
	return h, true
}

func (uc *DogUseCase) weight(verr *domain.ValidationError, n dto.NumberInput, required bool) (decimal.Decimal, bool) {
	if !present(verr, "weight", n, required) {
		return decimal.Zero, false
	}
	w, err := n.Decimal()
	if err != nil {
		verr.Add("weight", "weight debe ser un número")
		return decimal.Zero, false
	}
	if msg := uc.limits.WeightError(w); msg != "" {
		verr.Add("weight", msg)
		return decimal.Zero, false
	}
	return w, true
}

func requiredText(verr *domain.ValidationError, field, value string, max int) {
	if value == "" {
		verr.Add(field, field+" es obligatorio")
		return
	}
	maxLen(verr, field, value, max)
}

func maxLen(verr *domain.ValidationError, field, value string, max int) {
	if len([]rune(value)) > max {
		verr.Add(field, fmt.Sprintf("%s admite como máximo %d caracteres", field, max))
	}
}

func checkGender(verr *domain.ValidationError, g string) {
	if g != "" && !entity.IsValidGender(g) {
		verr.Add("gender", "gender debe ser Male o Female")
	}
}

func checkFreeText(verr *domain.ValidationError, d *entity.Dog) {
	maxLen(verr, "vaccines", d.Vaccines, entity.MaxVaccinesLen)
	maxLen(verr, "diseases", d.Diseases, entity.MaxDiseasesLen)
	maxLen(verr, "medical_history", d.MedicalHistory, entity.MaxMedicalHistoryLen)
	maxLen(verr, "personality", d.Personality, entity.MaxPersonalityLen)
}

func applyMedical(d *entity.Dog, vaccines, diseases, history, personality *string) {
	if vaccines != nil {
		d.Vaccines = *vaccines
	}
	if diseases != nil {
		d.Diseases = *diseases
	}
	if history != nil {
		d.MedicalHistory = *history
	}
	if personality != nil {
		d.Personality = *personality
	}
}

func toExpertDog(d *entity.Dog) dto.ExpertDogResponse {
	return dto.ExpertDogResponse{
		ID:             d.ID,
		Name:           d.Name,
		Breed:          d.Breed,
		Age:            d.Age,
		Color:          d.Color,
		Height:         d.Height.InexactFloat64(),
		Weight:         d.Weight.InexactFloat64(),
		Gender:         d.Gender,
		Vaccines:       d.Vaccines,
		Diseases:       d.Diseases,
		MedicalHistory: d.MedicalHistory,
		Personality:    d.Personality,
	}
}

func toAdminDog(d *entity.Dog) dto.AdminDogResponse {
	return dto.AdminDogResponse{
		ExpertDogResponse: toExpertDog(d),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
