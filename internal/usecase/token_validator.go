package usecase

import (
	"webstore-service/internal/domain/user"
	"webstore-service/internal/pkg/authctx"
	"webstore-service/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (authctx.Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (authctx.Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return authctx.Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return authctx.Identity{}, err
	}

	if claims.UserID == uuid.Nil {
		return authctx.Identity{}, jwt.ErrInvalidToken
	}

	return authctx.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     role.String(),
	}, nil
}
