package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/application/usecase"
	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
	"github.com/jhoicas/adoptease-api/internal/infrastructure/sqlstore"
	"github.com/jhoicas/adoptease-api/pkg/config"
)

func newStore(t *testing.T) repository.Store {
	t.Helper()
	ctx := context.Background()
	s, err := sqlstore.OpenSQLite(ctx, filepath.Join(t.TempDir(), "uc.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func validDog() dto.CreateDogRequest {
	return dto.CreateDogRequest{
		Name: "Toby", Breed: "Labrador", Color: "Negro", Gender: "Male",
		Age: dto.Num("4"), Height: dto.Num("60"), Weight: dto.Num("28.5"),
		Vaccines: "Rabia",
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestDogCreate_LimitesInclusivos(t *testing.T) {
	uc := usecase.NewDogUseCase(newStore(t).Dogs(), entity.ExtendedDogLimits())
	ctx := context.Background()

	in := validDog()
	in.Age, in.Height, in.Weight = dto.Num("35"), dto.Num("7.5"), dto.Num("0.25")
	out, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, out.Dog.ID)
	assert.Equal(t, 7.5, out.Dog.Height)
	assert.Equal(t, 0.25, out.Dog.Weight)

	in.Age = dto.Num("36")
	_, err = uc.Create(ctx, in)
	assert.Equal(t, []string{"age"}, fieldsOf(t, err))
}

func TestDogCreate_ErroresDetallados(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewDogUseCase(store.Dogs(), entity.ExtendedDogLimits())

	in := dto.CreateDogRequest{
		Name: "", Breed: "Pug", Color: "Beige", Gender: "male",
		Age: dto.Num("3.5"), Height: dto.Num("alto"), Weight: dto.Num("250"),
	}
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ElementsMatch(t, []string{"name", "gender", "age", "height", "weight"}, fieldsOf(t, err))

	n, err := store.Dogs().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDogCreate_CamposNumericosObligatorios(t *testing.T) {
	uc := usecase.NewDogUseCase(newStore(t).Dogs(), entity.ExtendedDogLimits())
	in := validDog()
	in.Age, in.Weight = dto.NumberInput{}, dto.NumberInput{}
	_, err := uc.Create(context.Background(), in)
	assert.ElementsMatch(t, []string{"age", "weight"}, fieldsOf(t, err))
}

func TestDogCreate_PerfilStandard(t *testing.T) {
	uc := usecase.NewDogUseCase(newStore(t).Dogs(), entity.StandardDogLimits())
	in := validDog()
	in.Weight = dto.Num("150")
	_, err := uc.Create(context.Background(), in)
	assert.Equal(t, []string{"weight"}, fieldsOf(t, err))
}

func TestDogCreate_NumerosFueraDeRango(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewDogUseCase(store.Dogs(), entity.ExtendedDogLimits())

	cases := []struct {
		name  string
		mut   func(*dto.CreateDogRequest)
		field string
		msg   string
	}{
		{"edad mayor que int64", func(in *dto.CreateDogRequest) { in.Age = dto.Num("18446744073709551621") }, "age", "age debe ser un número entero"},
		{"edad negativa enorme", func(in *dto.CreateDogRequest) { in.Age = dto.Num("-9223372036854775809") }, "age", "age debe ser un número entero"},
		{"edad con exponente", func(in *dto.CreateDogRequest) { in.Age = dto.Num("5e900000000") }, "age", "age debe ser un número entero"},
		{"altura con exponente enorme", func(in *dto.CreateDogRequest) { in.Height = dto.Num("1e900000000") }, "height", "height debe ser un número"},
		{"peso con exponente negativo enorme", func(in *dto.CreateDogRequest) { in.Weight = dto.Num("1e-900000000") }, "weight", "weight debe ser un número"},
		{"literal demasiado largo", func(in *dto.CreateDogRequest) { in.Weight = dto.Num("1" + strings.Repeat("0", 40)) }, "weight", "weight debe ser un número"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validDog()
			tc.mut(&in)

			done := make(chan error, 1)
			go func() {
				_, err := uc.Create(context.Background(), in)
				done <- err
			}()
			var err error
			select {
			case err = <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("la validación no terminó")
			}

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
			assert.Equal(t, tc.msg, verr.Fields[0].Message)
		})
	}

	n, err := store.Dogs().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDogCreate_ExponentePequenoValido(t *testing.T) {
	uc := usecase.NewDogUseCase(newStore(t).Dogs(), entity.ExtendedDogLimits())
	in := validDog()
	in.Age, in.Height = dto.Num("3e0"), dto.Num("6.25e1")
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Dog.Age)
	assert.Equal(t, 62.5, out.Dog.Height)
}

func TestDogAdminUpdate_Parcial(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewDogUseCase(store.Dogs(), entity.ExtendedDogLimits())
	ctx := context.Background()
	created, err := uc.Create(ctx, validDog())
	require.NoError(t, err)

	name := "Toby II"
	out, err := uc.AdminUpdate(ctx, created.Dog.ID, dto.UpdateDogRequest{Name: &name, Weight: dto.Num("30")})
	require.NoError(t, err)
	assert.Equal(t, "Toby II", out.Dog.Name)
	assert.Equal(t, 30.0, out.Dog.Weight)
	assert.Equal(t, "Labrador", out.Dog.Breed)
	assert.Equal(t, 4, out.Dog.Age)
	assert.False(t, out.Dog.UpdatedAt.Before(created.Dog.UpdatedAt))

	_, err = uc.AdminUpdate(ctx, created.Dog.ID, dto.UpdateDogRequest{Height: dto.Num("151")})
	assert.Equal(t, []string{"height"}, fieldsOf(t, err))

	stored, err := store.Dogs().GetByID(ctx, created.Dog.ID)
	require.NoError(t, err)
	assert.True(t, stored.Height.Equal(decimal.NewFromInt(60)))

	_, err = uc.AdminUpdate(ctx, 9999, dto.UpdateDogRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDogNotFound)
}

func TestDogExpertUpdate_SoloCamposPermitidos(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewDogUseCase(store.Dogs(), entity.ExtendedDogLimits())
	ctx := context.Background()
	created, err := uc.Create(ctx, validDog())
	require.NoError(t, err)

	var body dto.ExpertUpdateDogRequest
	require.NoError(t, json.Unmarshal([]byte(`{"vaccines":"Rabia, Moquillo","height":"62.5","name":"Ignorado"}`), &body))
	out, err := uc.ExpertUpdate(ctx, created.Dog.ID, body)
	require.NoError(t, err)
	assert.Equal(t, "Rabia, Moquillo", out.Dog.Vaccines)
	assert.Equal(t, 62.5, out.Dog.Height)
	assert.Equal(t, "Toby", out.Dog.Name)

	_, err = uc.ExpertUpdate(ctx, 424242, body)
	assert.ErrorIs(t, err, domain.ErrDogNotFound)
}

func TestDogDeleteYVistas(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewDogUseCase(store.Dogs(), entity.ExtendedDogLimits())
	ctx := context.Background()
	created, err := uc.Create(ctx, validDog())
	require.NoError(t, err)

	expert, err := uc.ListExpert(ctx)
	require.NoError(t, err)
	raw, err := json.Marshal(expert)
	require.NoError(t, err)
	var generic map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Len(t, generic["dogs"], 1)
	assert.NotContains(t, generic["dogs"][0], "created_at")
	assert.NotContains(t, generic["dogs"][0], "updated_at")

	customer, err := uc.ListCustomer(ctx)
	require.NoError(t, err)
	raw, err = json.Marshal(customer)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic["dogs"][0], "created_at")
	assert.NotContains(t, generic["dogs"][0], "updated_at")

	admin, err := uc.ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, admin.Dogs, 1)
	assert.False(t, admin.Dogs[0].UpdatedAt.IsZero())

	require.NoError(t, uc.Delete(ctx, created.Dog.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.Dog.ID), domain.ErrDogNotFound)
}

func TestUserUseCase_ListYDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	admin := &entity.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "h", Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now}
	other := &entity.User{Name: "Eva", Email: "eva@example.com", PasswordHash: "h", Role: entity.RoleCustomer, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users().Create(ctx, admin))
	require.NoError(t, store.Users().Create(ctx, other))
	uc := usecase.NewUserUseCase(store.Users())

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Users, 2)
	raw, err := json.Marshal(list)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	assert.ErrorIs(t, uc.Delete(ctx, admin, admin.ID), domain.ErrSelfDelete)
	still, err := store.Users().GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	require.NoError(t, uc.Delete(ctx, admin, other.ID))
	assert.ErrorIs(t, uc.Delete(ctx, admin, other.ID), domain.ErrUserNotFound)
}

type fakeChat struct {
	got   string
	reply string
	err   error
}

func (f *fakeChat) Complete(ctx context.Context, message string) (string, error) {
	f.got = message
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("sin deadline")
	}
	return f.reply, f.err
}

func TestChatUseCase(t *testing.T) {
	ctx := context.Background()
	fake := &fakeChat{reply: "¡Hola! Puedo ayudarte a adoptar."}
	uc := usecase.NewChatUseCase(fake, time.Second)

	out, err := uc.Reply(ctx, dto.ChatRequest{Message: "Hola"})
	require.NoError(t, err)
	assert.Equal(t, "¡Hola! Puedo ayudarte a adoptar.", out.Response)
	assert.Equal(t, "Hola", fake.got)

	_, err = uc.Reply(ctx, dto.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fake.err = errors.New("upstream 502")
	_, err = uc.Reply(ctx, dto.ChatRequest{Message: "Hola"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDogLimitsFromConfig(t *testing.T) {
	maxAge := 20
	minWeight := 1.5
	l, err := usecase.DogLimitsFromConfig(config.DogLimitsConfig{Profile: "standard", AgeMax: &maxAge, WeightMin: &minWeight})
	require.NoError(t, err)
	assert.Equal(t, 20, l.AgeMax)
	assert.True(t, l.WeightMin.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, l.HeightMax.Equal(decimal.NewFromInt(200)))

	_, err = usecase.DogLimitsFromConfig(config.DogLimitsConfig{Profile: "gigante"})
	assert.Error(t, err)
}
