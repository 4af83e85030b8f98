package response

import "webstore-service/internal/usecase"

type AuthResponse struct {
	Token string `json:"token"`
}

func FromAuthPayload(p *usecase.AuthPayload) *AuthResponse {
	return &AuthResponse{Token: p.Token}
}
