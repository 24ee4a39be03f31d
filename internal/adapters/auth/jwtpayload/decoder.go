package jwtpayload

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"petcare-web/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUserID = errors.New("token payload missing user_id")
)

// Decoder implementa auth.TokenDecoder leyendo el payload del JWT sin
// verificar firma. La firma la valida el backend en cada request.
type Decoder struct {
	parser *jwt.Parser
}

func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser(jwt.WithJSONNumber())}
}

func (d *Decoder) Decode(token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	mc := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, mc); err != nil {
		return auth.Claims{}, fmt.Errorf("decode token payload: %w", err)
	}

	uid := userID(mc["user_id"])
	if uid == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	sub, _ := mc.GetSubject()
	return auth.Claims{UserID: uid, Email: strings.TrimSpace(sub)}, nil
}

// user_id viene como número en el backend, pero aceptamos string.
func userID(v any) string {
	switch x := v.(type) {
	case json.Number:
		return x.String()
	case string:
		return strings.TrimSpace(x)
	case float64:
		return fmt.Sprintf("%.0f", x)
	default:
		return ""
	}
}
