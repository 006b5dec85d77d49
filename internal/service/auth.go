package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/krakosik/happenings/internal/client"
	"github.com/krakosik/happenings/internal/dto"
)

type AuthService interface {
	ValidateToken(ctx context.Context, token string) (dto.Admin, error)
}

type authService struct {
	authClient          client.AuthClient
	tokenExpireVerifier client.TokenExpireVerifier
	allowedEmails       map[string]struct{}
}

func newAuthService(authClient client.AuthClient, verifier client.TokenExpireVerifier, adminEmails []string) AuthService {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowed[strings.ToLower(email)] = struct{}{}
	}
	return &authService{authClient: authClient, tokenExpireVerifier: verifier, allowedEmails: allowed}
}

// ValidateToken verifies a Firebase ID token. When an admin allowlist is
// configured the token's email must be on it.
func (a *authService) ValidateToken(ctx context.Context, token string) (dto.Admin, error) {
	response, err := a.authClient.VerifyIDToken(ctx, token)
	if err != nil {
		if a.tokenExpireVerifier(err) {
			return dto.Admin{}, fmt.Errorf("%w: token expired", dto.ErrNotAuthorized)
		}
		return dto.Admin{}, fmt.Errorf("%w: %v", dto.ErrNotAuthorized, err)
	}

	if _, ok := response.Claims["email"]; !ok {
		return dto.Admin{}, fmt.Errorf("%w: %v", dto.ErrNotAuthorized, "email claim not found")
	}
	email, ok := response.Claims["email"].(string)
	if !ok {
		return dto.Admin{}, fmt.Errorf("%w: %v", dto.ErrNotAuthorized, "email claim is not a string")
	}

	if len(a.allowedEmails) > 0 {
		if _, allowed := a.allowedEmails[strings.ToLower(email)]; !allowed {
			return dto.Admin{}, fmt.Errorf("%w: %s is not an admin", dto.ErrNotAuthorized, email)
		}
	}

	return dto.Admin{UID: response.UID, Email: email}, nil
}
