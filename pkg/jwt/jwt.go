package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más la foto de la sesión.
// Rol y asignaciones viajan en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID         int64   `json:"user_id"`
	Username       string  `json:"username"`
	Role           string  `json:"role"` // ADMIN | LOCATION_MANAGER | PRODUCT_MANAGER | CUSTOMER
	LocationIDs    []int64 `json:"location_ids"`
	ProductLineIDs []int64 `json:"product_line_ids"`
	CustomerID     *int64  `json:"customer_id,omitempty"`
	Epoch          int64   `json:"epoch"` // época de sesión del usuario al emitir
}

// Payload datos de la sesión a firmar.
type Payload struct {
	UserID         int64
	Username       string
	Role           string
	LocationIDs    []int64
	ProductLineIDs []int64
	CustomerID     *int64
	Epoch          int64
}

// Options parámetros de firma.
type Options struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// ErrEmptySecret el secreto de firma no está configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Generate genera un token HS256 firmado con la sesión. Cada token lleva un jti (UUID) propio
// para poder revocarlo individualmente; devuelve también los claims emitidos.
func Generate(opts Options, p Payload) (string, *Claims, error) {
	if opts.Secret == "" {
		return "", nil, ErrEmptySecret
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    opts.Issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(opts.ExpMinutes) * time.Minute)),
		},
		UserID:         p.UserID,
		Username:       p.Username,
		Role:           p.Role,
		LocationIDs:    nonNil(p.LocationIDs),
		ProductLineIDs: nonNil(p.ProductLineIDs),
		CustomerID:     p.CustomerID,
		Epoch:          p.Epoch,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(opts.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("firmar token: %w", err)
	}
	return signed, claims, nil
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// Payload devuelve los datos de sesión contenidos en los claims.
func (c *Claims) Payload() Payload {
	return Payload{
		UserID:         c.UserID,
		Username:       c.Username,
		Role:           c.Role,
		LocationIDs:    nonNil(c.LocationIDs),
		ProductLineIDs: nonNil(c.ProductLineIDs),
		CustomerID:     c.CustomerID,
		Epoch:          c.Epoch,
	}
}

// TTL tiempo restante hasta la expiración (0 si ya expiró o no tiene exp).
func (c *Claims) TTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := time.Until(c.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
