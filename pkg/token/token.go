// Package token codifica y decodifica los tokens de sesión.
//
// El esquema es reversible y SIN firma (alg "none"), fiel al comportamiento
// del sistema: el token NO es una frontera de seguridad. Cualquier variante
// de producción necesitaría firma o MAC.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// Claims incluye los claims estándar más el rol del usuario, para que la
// verificación de permisos no tenga que consultar el store de credenciales.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Generate genera un token de sesión para el usuario con vigencia ttl desde now.
// Subject es el username; no tiene efectos secundarios.
func Generate(user *entity.User, issuer string, now time.Time, ttl time.Duration) (string, error) {
	if user == nil || user.Username == "" {
		return "", fmt.Errorf("token: usuario vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: user.Role.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	return tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
}

// Parse decodifica el token y devuelve sus claims.
// No valida la expiración: esa decisión es del llamador, que debe compararla
// contra un "now" leído en el momento del chequeo (nunca cacheado).
// Retorna error si el token está malformado o usa otro algoritmo.
func Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodNone {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return jwt.UnsafeAllowNoneSignatureType, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodNone.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("claims incompletos")
	}
	return claims, nil
}
