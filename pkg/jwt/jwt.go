// Package jwt valida los tokens de acceso que emite el proveedor de identidad.
// Este servicio no emite tokens; solo verifica firma, emisor, expiración y claims.
package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role rol del usuario dentro de la empresa del token.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "contador"
	RoleViewer     Role = "consulta"
)

// Valid informa si el rol es uno de los reconocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

var (
	ErrEmptySecret    = errors.New("jwt: secret vacío")
	ErrMissingCompany = errors.New("jwt: token sin company_id")
	ErrUnknownRole    = errors.New("jwt: rol desconocido")
)

// Claims incluye los claims estándar JWT más la empresa y el rol. El rol viaja en
// el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      Role   `json:"role,omitempty"`
}

// Validate se ejecuta después de las validaciones estándar (exp, iss).
// Un rol vacío se acepta aquí: RequireRole responde MISSING_ROLE.
func (c Claims) Validate() error {
	if c.CompanyID == "" {
		return ErrMissingCompany
	}
	if c.Role != "" && !c.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}
	return nil
}

// Verifier valida tokens HMAC de un emisor.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier construye el verificador. Si issuer está vacío no se exige el claim iss.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{secret: []byte(secret), parser: jwt.NewParser(opts...)}, nil
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado, de otro emisor o con firma incorrecta.
func (v *Verifier) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("jwt: claims inválidos")
	}
	return claims, nil
}
