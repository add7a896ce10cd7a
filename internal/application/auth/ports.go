package auth

import (
	"context"
	"time"
)

// RefreshStore guarda los JTI de refresh tokens vigentes. Consume elimina el
// JTI al usarlo: un refresh token rotado no puede reutilizarse.
type RefreshStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	// Consume devuelve el userID asociado y borra la entrada. Si el JTI no
	// existe (expirado o ya rotado), retorna domain.ErrInvalidRefreshToken.
	Consume(ctx context.Context, jti string) (string, error)
}
