package session

import (
	"context"
	"errors"
)

// Key es una clave del estado persistido por sesión de navegador.
type Key string

const (
	KeyAccessToken        Key = "access_token"
	KeyRefreshToken       Key = "refresh_token"
	KeyRedirectAfterLogin Key = "redirect_after_login"
	KeyViewMode           Key = "view_mode"
)

var ErrInvalidSessionID = errors.New("session id required")

// Store es el key-value por sesión. No hay expiración.
// Get devuelve ok=false si la clave no existe.
type Store interface {
	Get(ctx context.Context, sid string, key Key) (value string, ok bool, err error)
	Set(ctx context.Context, sid string, key Key, value string) error
	Delete(ctx context.Context, sid string, keys ...Key) error
	Clear(ctx context.Context, sid string) error
}
