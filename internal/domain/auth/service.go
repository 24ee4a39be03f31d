package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/platform/resource"
	authport "petcare-web/internal/ports/auth"
)

// Roles que se pueden registrar desde la web (admin no).
var Roles = []string{"owner", "clinic", "welfare"}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Service struct {
	client *httpclient.Client
}

func NewService(c *httpclient.Client) *Service {
	return &Service{client: c}
}

func (s *Service) Login(ctx context.Context, in Credentials) (authport.TokenPair, error) {
	return resource.FetchData[authport.TokenPair](ctx, s.client, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		JSON:   in,
	})
}

func (s *Service) Register(ctx context.Context, in Registration) (authport.TokenPair, error) {
	return resource.FetchData[authport.TokenPair](ctx, s.client, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		JSON:   in,
	})
}

// Logout revoca el refresh token en el backend. Es best-effort.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Query:  url.Values{"refresh_token": {refreshToken}},
	}, nil)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password",
		Query:  url.Values{"email": {email}},
	}, nil)
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/reset-password",
		Query:  url.Values{"token": {token}, "new_password": {newPassword}},
	}, nil)
}
