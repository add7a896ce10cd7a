package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jortega/ventas-api/internal/application/auth"
	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
	"github.com/jortega/ventas-api/pkg/password"
)

// UserUseCase gestión de usuarios: aprovisionamiento por admin, perfil,
// listado con alcance por rol y eliminación. Toda mutación consulta la
// política una sola vez antes de actuar; la identidad del llamador llega
// siempre como parámetro explícito.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create aprovisiona un usuario (solo admin). A diferencia del registro
// público, permite fijar rol y zona de acceso.
func (uc *UserUseCase) Create(caller authz.Caller, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceUser, Action: authz.ActionCreate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := password.Validate(in.Password); err != nil {
		return nil, domain.ErrWeakPassword
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.repo.GetByUsername(in.Username)
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
	rol := in.Rol
	if rol == "" {
		rol = entity.DefaultRole
	}
	zona := in.ZonaAcceso
	if zona == "" {
		zona = entity.DefaultZona
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Rol:          rol,
		ZonaAcceso:   zona,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario: admin puede ver cualquiera, los demás solo
// su propio registro.
func (uc *UserUseCase) GetByID(caller authz.Caller, targetID string) (*dto.UserResponse, error) {
	decision := authz.Decide(caller, authz.Request{
		Resource: authz.ResourceUser, Action: authz.ActionRead, TargetUserID: targetID,
	})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return auth.ToUserResponse(user), nil
}

// Update aplica un patch explícito sobre un usuario. Si el patch toca rol o
// zona_acceso y el llamador no es admin, la operación completa se niega:
// los demás campos del mismo patch no se aplican en silencio.
func (uc *UserUseCase) Update(caller authz.Caller, targetID string, patch dto.UserPatch) (*dto.UserResponse, error) {
	decision := authz.Decide(caller, authz.Request{
		Resource:               authz.ResourceUser,
		Action:                 authz.ActionUpdate,
		TargetUserID:           targetID,
		CambiaCamposProtegidos: patch.TocaCamposProtegidos(),
	})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := uc.repo.GetByEmail(*patch.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *patch.Email
	}
	if patch.Username != nil && *patch.Username != user.Username {
		existing, err := uc.repo.GetByUsername(*patch.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrUsernameAlreadyExists
		}
		user.Username = *patch.Username
	}
	if patch.Nombre != nil {
		user.Nombre = *patch.Nombre
	}
	if patch.Rol != nil {
		user.Rol = *patch.Rol
	}
	if patch.ZonaAcceso != nil {
		user.ZonaAcceso = *patch.ZonaAcceso
	}
	if patch.Activo != nil {
		user.Activo = *patch.Activo
	}
	// Password presente y no vacío: validar política y rehashear.
	if patch.Password != nil && *patch.Password != "" {
		if err := password.Validate(*patch.Password); err != nil {
			return nil, domain.ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario. La auto-eliminación se niega siempre, incluso
// para administradores.
func (uc *UserUseCase) Delete(caller authz.Caller, targetID string) error {
	decision := authz.Decide(caller, authz.Request{
		Resource: authz.ResourceUser, Action: authz.ActionDelete, TargetUserID: targetID,
	})
	if err := decision.Err(); err != nil {
		return err
	}
	user, err := uc.repo.GetByID(targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(targetID)
}

// List devuelve los usuarios visibles para el llamador: todos si es admin,
// exactamente su propio registro si no. Un llamador inactivo obtiene
// "no encontrado" en vez de su registro.
func (uc *UserUseCase) List(caller authz.Caller, limit, offset int) ([]*dto.UserResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceUser, Action: authz.ActionList})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if authz.ListUsersScope(caller) == authz.ScopeAll {
		users, err := uc.repo.List(limit, offset)
		if err != nil {
			return nil, err
		}
		out := make([]*dto.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, auth.ToUserResponse(u))
		}
		return out, nil
	}
	self, err := uc.repo.GetByID(caller.ID)
	if err != nil {
		return nil, err
	}
	if self == nil || !self.Activo {
		return nil, domain.ErrUserNotFound
	}
	return []*dto.UserResponse{auth.ToUserResponse(self)}, nil
}
