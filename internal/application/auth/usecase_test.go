package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jortega/ventas-api/internal/application/auth"
	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

// fakeRefreshStore replica la semántica de un solo uso del almacén Redis.
type fakeRefreshStore struct {
	jtis map[string]string // jti -> userID
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{jtis: map[string]string{}}
}

func (s *fakeRefreshStore) Save(_ context.Context, jti, userID string, _ time.Duration) error {
	s.jtis[jti] = userID
	return nil
}

func (s *fakeRefreshStore) Consume(_ context.Context, jti string) (string, error) {
	userID, ok := s.jtis[jti]
	if !ok {
		return "", domain.ErrInvalidRefreshToken
	}
	delete(s.jtis, jti)
	return userID, nil
}

// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo, *fakeRefreshStore) {
	repo := newFakeUserRepo()
	store := newFakeRefreshStore()
	uc := auth.NewAuthUseCase(repo, store, auth.JWTConfig{
		Secret:           testSecret,
		AccessExpMinutes: 60,
		RefreshExpHours:  24,
		Issuer:           "ventas-api-test",
	})
	return uc, repo, store
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, pass string, activo bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "user-" + email,
		Email:        email,
		Username:     email,
		PasswordHash: string(hash),
		Nombre:       "Usuario",
		Rol:          entity.RoleUsuario,
		ZonaAcceso:   entity.DefaultZona,
		Activo:       activo,
	}
	require.NoError(t, repo.Create(u))
	return u
}

func TestRegister_RolYZonaPorDefecto(t *testing.T) {
	uc, _, _ := newAuthUC()

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "a@x.com",
		Username: "a",
		Password: "Str0ng!Pw",
		Nombre:   "A",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUsuario, user.Rol)
	assert.Equal(t, entity.DefaultZona, user.ZonaAcceso)
	assert.True(t, user.Activo)
	assert.NotEmpty(t, user.ID)
}

func TestRegister_NombreCaePorDefectoAlUsername(t *testing.T) {
	uc, _, _ := newAuthUC()

	user, err := uc.Register(dto.RegisterRequest{
		Email: "b@x.com", Username: "bruno", Password: "Str0ng!Pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "bruno", user.Nombre)
}

func TestRegister_PasswordDebil(t *testing.T) {
	uc, _, _ := newAuthUC()

	casos := []string{"corta1", "soloconletras", "12345678"}
	for _, pass := range casos {
		_, err := uc.Register(dto.RegisterRequest{
			Email: "c@x.com", Username: "c", Password: pass,
		})
		assert.ErrorIs(t, err, domain.ErrWeakPassword, "password %q", pass)
	}
}

// failingUserRepo simula una caída de la base de datos en la búsqueda por
// email: el fallo debe propagarse, no leerse como "no hay duplicado".
type failingUserRepo struct {
	fakeUserRepo
}

func (r *failingUserRepo) GetByEmail(email string) (*entity.User, error) {
	return nil, errors.New("conexión rechazada")
}

func TestRegister_ErrorDeRepoSePropaga(t *testing.T) {
	repo := &failingUserRepo{fakeUserRepo: *newFakeUserRepo()}
	uc := auth.NewAuthUseCase(repo, newFakeRefreshStore(), auth.JWTConfig{
		Secret:           testSecret,
		AccessExpMinutes: 60,
		RefreshExpHours:  24,
		Issuer:           "ventas-api-test",
	})

	_, err := uc.Register(dto.RegisterRequest{
		Email: "a@x.com", Username: "a", Password: "Str0ng!Pw",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.users)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, repo, _ := newAuthUC()
	seedUser(t, repo, "dup@x.com", "Str0ng!Pw", true)

	_, err := uc.Register(dto.RegisterRequest{
		Email: "dup@x.com", Username: "otro", Password: "Str0ng!Pw",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, repo, _ := newAuthUC()
	seedUser(t, repo, "uno@x.com", "Str0ng!Pw", true)

	_, err := uc.Register(dto.RegisterRequest{
		Email: "dos@x.com", Username: "uno@x.com", Password: "Str0ng!Pw",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, repo, _ := newAuthUC()
	seedUser(t, repo, "ana@x.com", "Str0ng!Pw", true)

	// Email inexistente y password incorrecta producen el mismo error:
	// no se filtra cuál de los dos falló.
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.com", Password: "Str0ng!Pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "incorrecta1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo, _ := newAuthUC()
	seedUser(t, repo, "inactivo@x.com", "Str0ng!Pw", false)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "inactivo@x.com", Password: "Str0ng!Pw"})
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestLogin_EmiteParDeTokens(t *testing.T) {
	uc, repo, _ := newAuthUC()
	u := seedUser(t, repo, "ana@x.com", "Str0ng!Pw", true)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "Str0ng!Pw"})
	require.NoError(t, err)

	identity, err := jwt.ParseAccess(testSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, identity.UserID)
	assert.Equal(t, u.Email, identity.Email)
	assert.Equal(t, u.Rol, identity.Rol)

	userID, jti, err := jwt.ParseRefresh(testSecret, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.NotEmpty(t, jti)
}

func TestRefresh_RotaElPar(t *testing.T) {
	uc, repo, _ := newAuthUC()
	seedUser(t, repo, "ana@x.com", "Str0ng!Pw", true)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "Str0ng!Pw"})
	require.NoError(t, err)

	pair, err := uc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	// El refresh es de un solo uso: repetirlo con el token ya rotado falla.
	_, err = uc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	// El nuevo sí sigue siendo válido.
	_, err = uc.Refresh(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	uc, _, _ := newAuthUC()

	_, err := uc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}

func TestRefresh_UsuarioDesactivadoDespuesDelLogin(t *testing.T) {
	uc, repo, _ := newAuthUC()
	u := seedUser(t, repo, "ana@x.com", "Str0ng!Pw", true)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "Str0ng!Pw"})
	require.NoError(t, err)

	u.Activo = false
	require.NoError(t, repo.Update(u))

	_, err = uc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}
