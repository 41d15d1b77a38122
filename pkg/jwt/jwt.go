package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Duraciones de sesión: 1 día por defecto, 30 días con "recordarme".
const (
	SessionTTL    = 24 * time.Hour
	RememberMeTTL = 30 * 24 * time.Hour
)

// ErrExpired se devuelve cuando la firma es válida pero el token ya venció.
var ErrExpired = errors.New("jwt: token expirado")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// El email identifica al usuario; Role permite al middleware decidir sin ir a la DB.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // "admin" | "customer" | "expert"
}

// TTL devuelve la duración del token según la opción "recordarme".
func TTL(rememberMe bool) time.Duration {
	if rememberMe {
		return RememberMeTTL
	}
	return SessionTTL
}

// Generate genera un token JWT HS256 con email, name y role, válido durante ttl.
func Generate(secret, issuer, email, name, role string, ttl time.Duration) (string, error) {
	return GenerateAt(secret, issuer, email, name, role, ttl, time.Now())
}

// GenerateAt igual que Generate pero con el instante de emisión explícito.
func GenerateAt(secret, issuer, email, name, role string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Name:  name,
		Role:  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token (firma HMAC y expiración) y devuelve sus claims.
// Devuelve ErrExpired si el token venció.
func Parse(secret, tokenString string) (*Claims, error) {
	return ParseAt(secret, tokenString, time.Now())
}

// ParseAt igual que Parse evaluando la expiración respecto a now.
func ParseAt(secret, tokenString string, now time.Time) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("claims inválidos: email vacío")
	}
	return claims, nil
}
