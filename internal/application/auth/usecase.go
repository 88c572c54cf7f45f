package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/internal/application/validation"
	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/pkg/jwt"
)

// TokenIssuer emite y valida el par de tokens.
type TokenIssuer interface {
	GeneratePair(userID int64) (*jwt.TokenPair, error)
	Parse(token, expectedType string) (*jwt.Claims, error)
}

// AuthUseCase casos de uso de autenticación: login, perfil y refresh.
type AuthUseCase struct {
	identity IdentityProvider
	tokens   TokenIssuer
	validate validation.FailFastValidator
}

// NewAuthUseCase construye el caso de uso con el proveedor de identidad elegido por configuración.
func NewAuthUseCase(identity IdentityProvider, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{identity: identity, tokens: tokens}
}

// Login verifica correo/password y emite el par access/refresh.
// Credenciales inválidas y cuenta inactiva llegan al cliente como el mismo 401.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenPairResponse, error) {
	in.Correo = strings.TrimSpace(in.Correo)
	if err := uc.validate.Validate(&in); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	u, err := uc.identity.Authenticate(ctx, in.Correo, in.Password)
	if err != nil {
		return nil, err
	}
	pair, err := uc.tokens.GeneratePair(u.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh}, nil
}

// Me devuelve el perfil del principal del token (claim user_id).
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UsuarioResponse, error) {
	u, err := uc.identity.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	return usecase.ToUsuarioResponse(u), nil
}

// Refresh canjea un refresh token válido por un par nuevo. Un access token no sirve.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenPairResponse, error) {
	claims, err := uc.tokens.Parse(strings.TrimSpace(in.Refresh), jwt.TypeRefresh)
	if err != nil {
		if errors.Is(err, jwt.ErrWrongType) || errors.Is(err, jwt.ErrExpiredToken) || errors.Is(err, jwt.ErrInvalidToken) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	u, err := uc.identity.Profile(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Activo {
		return nil, domain.ErrUnauthorized
	}
	pair, err := uc.tokens.GeneratePair(u.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh}, nil
}
