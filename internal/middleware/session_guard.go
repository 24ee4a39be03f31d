package middleware

import (
	"context"
	"net/http"

	"petcare-web/internal/ports/auth"
	"petcare-web/internal/session"

	"go.uber.org/zap"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity es el usuario "visible" del request: token + claims decodificados
// sin verificar. Sirve para mostrar datos y armar rutas, no para autorizar.
type Identity struct {
	Token  string
	Claims auth.Claims
}

// Sessions carga la sesión del navegador (cookie) en el contexto.
func Sessions(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := mgr.Load(w, r)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// AuthContext:
// - Si hay token y se puede decodificar => setea Identity.
// - Si no, el request sigue anónimo; no redirige ni limpia nada.
// Lo usan las páginas públicas que cambian si hay usuario (header, botones).
func AuthContext(dec auth.TokenDecoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			tok, err := s.AccessToken(r.Context())
			if err != nil || tok == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := dec.Decode(tok)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, Identity{Token: tok, Claims: claims})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession protege una página:
// - sin token => guarda el destino (sólo GET) y redirige a login sin ejecutar el handler
// - token ilegible o sin user_id => limpia toda la sesión y redirige a login
// Ninguna llamada al backend ocurre antes de esta decisión.
func RequireSession(dec auth.TokenDecoder, loginPath string, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			s, ok := session.FromContext(ctx)
			if !ok {
				log.Error("session middleware not installed", zap.String("path", r.URL.Path))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			tok, err := s.AccessToken(ctx)
			if err != nil {
				log.Error("session store read failed", zap.Error(err))
				http.Error(w, "session unavailable", http.StatusServiceUnavailable)
				return
			}

			if tok == "" {
				if r.Method == http.MethodGet || r.Method == http.MethodHead {
					if err := s.SetRedirect(ctx, r.URL.RequestURI()); err != nil {
						log.Warn("store redirect target failed", zap.Error(err))
					}
				}
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			claims, err := dec.Decode(tok)
			if err != nil {
				log.Info("clearing session with unreadable token", zap.Error(err))
				if err := s.Clear(ctx); err != nil {
					log.Warn("clear session failed", zap.Error(err))
				}
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx = context.WithValue(ctx, identityKey, Identity{Token: tok, Claims: claims})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey).(Identity)
	return v, ok && v.Token != ""
}

// Token devuelve el bearer del request o "" si es anónimo.
func Token(ctx context.Context) string {
	id, _ := GetIdentity(ctx)
	return id.Token
}
