package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/adoptease-api/internal/application/auth"
	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/application/usecase"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/infrastructure/sqlstore"
	apphttp "github.com/jhoicas/adoptease-api/internal/interfaces/http"
)

const testSecret = "test-secret-key-for-unit-tests"

type fakeChat struct {
	reply string
	err   error
}

func (f fakeChat) Complete(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

type testEnv struct {
	app   *fiber.App
	store *sqlstore.Store
	admin string
}

func newTestEnv(t *testing.T, chat fakeChat) *testEnv {
	t.Helper()
	ctx := context.Background()
	store, err := sqlstore.OpenSQLite(ctx, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.EnsureSchema(ctx))

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, Issuer: "adoptease-test"}).
		WithHashCost(bcrypt.MinCost)
	_, err = authUC.EnsureAdmin(ctx, auth.AdminAccount{Email: "admin@adoptease.local", Name: "Admin", Password: "admin123"})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: authUC,
		UserUC: usecase.NewUserUseCase(store.Users()),
		DogUC:  usecase.NewDogUseCase(store.Dogs(), entity.ExtendedDogLimits()),
		ChatUC: usecase.NewChatUseCase(chat, 0),
		Store:  store,
	})
	env := &testEnv{app: app, store: store}
	env.admin = env.login(t, "admin@adoptease.local", "admin123")
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, out := e.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	return out["token"].(string)
}

func (e *testEnv) register(t *testing.T, email, role string) string {
	t.Helper()
	resp, out := e.do(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Email: email, Password: "secreto1", Name: "Usuario", Type: role,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	return e.login(t, email, "secreto1")
}

func validDog() map[string]any {
	return map[string]any{
		"name": "Toby", "breed": "Beagle", "age": 3, "color": "Tricolor",
		"height": 38.5, "weight": "12.25", "gender": "Male",
	}
}

func TestRegisterYLogin(t *testing.T) {
	env := newTestEnv(t, fakeChat{})

	resp, out := env.do(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Email: "ana@x.com", Password: "secreto1", Name: "Ana", Type: "customer",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Registro exitoso", out["message"])
	assert.Equal(t, "customer", out["type"])

	resp, out = env.do(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Email: "ana@x.com", Password: "otro", Name: "Ana 2", Type: "expert",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", out["code"])

	resp, out = env.do(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{Email: "x@x.com", Password: "p", Name: "X", Type: "admin"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.NotEmpty(t, out["fields"])

	resp, out = env.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Email: "ana@x.com", Password: "secreto1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana", out["name"])
	assert.Equal(t, "customer", out["type"])
	assert.NotEmpty(t, out["token"])

	resp, _ = env.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Email: "ana@x.com", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = env.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{Email: "nadie@x.com", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyToken_UsuarioEliminado(t *testing.T) {
	env := newTestEnv(t, fakeChat{})
	token := env.register(t, "vet@x.com", "expert")

	resp, out := env.do(t, http.MethodGet, "/api/verify-token", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["valid"])
	assert.Equal(t, "vet@x.com", out["user"].(map[string]any)["email"])

	u, err := env.store.Users().GetByEmail(context.Background(), "vet@x.com")
	require.NoError(t, err)
	resp, _ = env.do(t, http.MethodDelete, "/api/admin/users/"+strconv.FormatInt(u.ID, 10), env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, out = env.do(t, http.MethodGet, "/api/verify-token", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "USER_NOT_FOUND", out["code"])

	resp, out = env.do(t, http.MethodGet, "/api/verify-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", out["code"])

	resp, out = env.do(t, http.MethodGet, "/api/verify-token", "no.es.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", out["code"])
}

func TestDogs_NumerosDesbordados(t *testing.T) {
	env := newTestEnv(t, fakeChat{})

	body := validDog()
	body["age"] = json.RawMessage("18446744073709551621")
	body["height"] = json.RawMessage("1e900000000")
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/dogs", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.admin)
	resp, err := env.app.Test(req, 2000)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Code   string `json:"code"`
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
	got := map[string]string{}
	for _, f := range out.Fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, map[string]string{
		"age":    "age debe ser un número entero",
		"height": "height debe ser un número",
	}, got)

	n, err := env.store.Dogs().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAdminUsers(t *testing.T) {
	env := newTestEnv(t, fakeChat{})
	customer := env.register(t, "ana@x.com", "customer")

	resp, out := env.do(t, http.MethodGet, "/api/admin/users", env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := out["users"].([]any)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u.(map[string]any), "password")
	}

	resp, _ = env.do(t, http.MethodGet, "/api/admin/users", customer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin, err := env.store.Users().GetByEmail(context.Background(), "admin@adoptease.local")
	require.NoError(t, err)
	resp, out = env.do(t, http.MethodDelete, "/api/admin/users/"+strconv.FormatInt(admin.ID, 10), env.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "SELF_DELETE", out["code"])

	resp, _ = env.do(t, http.MethodDelete, "/api/admin/users/9999", env.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDogs_FlujoCompleto(t *testing.T) {
	env := newTestEnv(t, fakeChat{})
	expert := env.register(t, "vet@x.com", "expert")
	customer := env.register(t, "ana@x.com", "customer")

	resp, out := env.do(t, http.MethodPost, "/api/admin/dogs", env.admin, validDog())
	require.Equal(t, http.StatusCreated, resp.StatusCode, out)
	dog := out["dog"].(map[string]any)
	id := strconv.Itoa(int(dog["id"].(float64)))
	assert.Equal(t, 12.25, dog["weight"])
	assert.Contains(t, dog, "updated_at")

	// validación por campo
	bad := validDog()
	bad["age"] = 99
	bad["name"] = ""
	resp, out = env.do(t, http.MethodPost, "/api/admin/dogs", env.admin, bad)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, out["fields"], 2)

	// el experto no puede crear
	resp, _ = env.do(t, http.MethodPost, "/api/admin/dogs", expert, validDog())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, out = env.do(t, http.MethodPut, "/api/admin/dogs/"+id, env.admin, map[string]any{"name": "Max"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Max", out["dog"].(map[string]any)["name"])
	assert.Equal(t, "Beagle", out["dog"].(map[string]any)["breed"])

	resp, out = env.do(t, http.MethodPut, "/api/expert/dogs/"+id, expert, map[string]any{"vaccines": "Rabia", "name": "Ignorado"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Rabia", out["dog"].(map[string]any)["vaccines"])
	assert.Equal(t, "Max", out["dog"].(map[string]any)["name"])

	// el admin consulta la vista experto pero no la edita
	resp, out = env.do(t, http.MethodGet, "/api/expert/dogs", env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, out["dogs"].([]any)[0].(map[string]any), "created_at")
	resp, _ = env.do(t, http.MethodPut, "/api/expert/dogs/"+id, env.admin, map[string]any{"vaccines": "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, out = env.do(t, http.MethodGet, "/api/customer/dogs", customer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cd := out["dogs"].([]any)[0].(map[string]any)
	assert.Contains(t, cd, "created_at")
	assert.NotContains(t, cd, "updated_at")

	resp, _ = env.do(t, http.MethodGet, "/api/customer/dogs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/admin/dogs/"+id, env.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, out = env.do(t, http.MethodDelete, "/api/admin/dogs/"+id, env.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "DOG_NOT_FOUND", out["code"])
	resp, _ = env.do(t, http.MethodPut, "/api/admin/dogs/"+id, env.admin, map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChat(t *testing.T) {
	env := newTestEnv(t, fakeChat{reply: "Hola, ¿qué perro buscas?"})
	token := env.register(t, "ana@x.com", "customer")

	resp, out := env.do(t, http.MethodPost, "/chat", token, dto.ChatRequest{Message: "hola"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hola, ¿qué perro buscas?", out["response"])

	resp, _ = env.do(t, http.MethodPost, "/chat", token, dto.ChatRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/chat", "", dto.ChatRequest{Message: "hola"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChat_FalloDelProveedor(t *testing.T) {
	env := newTestEnv(t, fakeChat{err: errors.New("HTTP 502")})
	token := env.register(t, "ana@x.com", "customer")

	resp, out := env.do(t, http.MethodPost, "/chat", token, dto.ChatRequest{Message: "hola"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, out["message"], "502")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, fakeChat{})
	resp, out := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", out["database"])

	env.store.Close()
	resp, _ = env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
