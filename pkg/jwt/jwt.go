package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Identity son los datos del usuario que viajan en el access token.
// Debe mantenerse alineada con los campos de entity.User.
type Identity struct {
	UserID     string
	Email      string
	Nombre     string
	Rol        string
	ZonaAcceso string
}

// Claims incluye los claims estándar JWT más los propios de la aplicación:
// email, nombre, rol y zona_acceso, para que el middleware decida sin
// consultar la base de datos.
type Claims struct {
	jwt.RegisteredClaims
	Email      string `json:"email,omitempty"`
	Nombre     string `json:"nombre,omitempty"`
	Rol        string `json:"rol,omitempty"`
	ZonaAcceso string `json:"zona_acceso,omitempty"`
	TokenType  string `json:"token_type"`
}

// GenerateAccess genera el access token firmado (HS256) con la identidad completa.
func GenerateAccess(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email:      id.Email,
		Nombre:     id.Nombre,
		Rol:        id.Rol,
		ZonaAcceso: id.ZonaAcceso,
		TokenType:  TypeAccess,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefresh genera el refresh token: solo subject + JTI, vida más larga.
// El JTI se registra en el almacén de refresh para permitir la rotación.
func GenerateRefresh(secret, userID, jti, issuer string, expHours int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expHours) * time.Hour)),
		},
		TokenType: TypeRefresh,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccess valida un access token y devuelve la identidad.
// Retorna error si el token es inválido, expirado, de tipo incorrecto o con
// firma incorrecta.
func ParseAccess(secret, tokenString string) (Identity, error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return Identity{}, err
	}
	if claims.TokenType != TypeAccess {
		return Identity{}, fmt.Errorf("jwt: el token no es de tipo access")
	}
	return Identity{
		UserID:     claims.Subject,
		Email:      claims.Email,
		Nombre:     claims.Nombre,
		Rol:        claims.Rol,
		ZonaAcceso: claims.ZonaAcceso,
	}, nil
}

// ParseRefresh valida un refresh token y devuelve subject y JTI.
func ParseRefresh(secret, tokenString string) (userID, jti string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != TypeRefresh {
		return "", "", fmt.Errorf("jwt: el token no es de tipo refresh")
	}
	if claims.ID == "" {
		return "", "", fmt.Errorf("jwt: refresh sin JTI")
	}
	return claims.Subject, claims.ID, nil
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
