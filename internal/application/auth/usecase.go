package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
	"github.com/jortega/ventas-api/pkg/jwt"
	"github.com/jortega/ventas-api/pkg/password"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret           string
	AccessExpMinutes int
	RefreshExpHours  int
	Issuer           string
}

// AuthUseCase casos de uso de autenticación: registro público, login y
// rotación de refresh tokens.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	refreshStore RefreshStore
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, refreshStore RefreshStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, refreshStore: refreshStore, jwtCfg: jwtCfg}
}

// Register crea un usuario por auto-registro: valida la política de
// contraseñas, hashea con bcrypt y persiste. El rol siempre queda en
// "usuario" y la zona en "general" (el registro público no elige rol).
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := password.Validate(in.Password); err != nil {
		return nil, domain.ErrWeakPassword
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Rol:          entity.DefaultRole,
		ZonaAcceso:   entity.DefaultZona,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password y emite el par access+refresh.
// No distingue entre email inexistente y contraseña incorrecta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Activo {
		return nil, domain.ErrInactiveUser
	}
	access, refresh, err := uc.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *ToUserResponse(user),
	}, nil
}

// Refresh rota el par de tokens: valida el refresh JWT, consume su JTI del
// almacén (un solo uso) y emite un par nuevo. Reusar un token ya rotado
// retorna ErrInvalidRefreshToken.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	userID, jti, err := jwt.ParseRefresh(uc.jwtCfg.Secret, refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}
	storedUserID, err := uc.refreshStore.Consume(ctx, jti)
	if err != nil {
		return nil, err
	}
	if storedUserID != userID {
		return nil, domain.ErrInvalidRefreshToken
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Activo {
		return nil, domain.ErrInvalidRefreshToken
	}
	access, refresh, err := uc.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// issuePair emite access+refresh y registra el JTI del refresh en el almacén.
func (uc *AuthUseCase) issuePair(ctx context.Context, user *entity.User) (access, refresh string, err error) {
	identity := jwt.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Nombre:     user.Nombre,
		Rol:        user.Rol,
		ZonaAcceso: user.ZonaAcceso,
	}
	access, err = jwt.GenerateAccess(uc.jwtCfg.Secret, identity, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
	if err != nil {
		return "", "", err
	}
	jti := uuid.New().String()
	refresh, err = jwt.GenerateRefresh(uc.jwtCfg.Secret, user.ID, jti, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpHours)
	if err != nil {
		return "", "", err
	}
	ttl := time.Duration(uc.jwtCfg.RefreshExpHours) * time.Hour
	if err := uc.refreshStore.Save(ctx, jti, user.ID, ttl); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ToUserResponse convierte la entidad a DTO de salida (sin el hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Nombre:     u.Nombre,
		Rol:        u.Rol,
		ZonaAcceso: u.ZonaAcceso,
		Activo:     u.Activo,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
