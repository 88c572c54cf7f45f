package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token del par.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("jwt: token inválido")
	ErrExpiredToken = errors.New("jwt: token expirado")
	ErrWrongType    = errors.New("jwt: tipo de token incorrecto")
)

// Claims incluye los claims estándar JWT más el id_usuario como principal.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
}

// TokenPair par access + refresh devuelto en el login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issuer firma y valida tokens HS256 con un secreto compartido entre servicios.
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer construye el emisor. El secreto no puede estar vacío.
func NewIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	return &Issuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// GeneratePair emite access y refresh para el usuario; ambos llevan user_id.
func (i *Issuer) GeneratePair(userID int64) (*TokenPair, error) {
	access, err := i.generate(userID, TypeAccess, i.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := i.generate(userID, TypeRefresh, i.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) generate(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse valida firma, expiración y tipo. expectedType vacío acepta cualquiera.
func (i *Issuer) Parse(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if expectedType != "" && claims.TokenType != expectedType {
		return nil, ErrWrongType
	}
	return claims, nil
}
