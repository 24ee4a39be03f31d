package session

import (
	"context"
	"net/http"
	"strings"

	"petcare-web/internal/ports/auth"

	"github.com/google/uuid"
)

const CookieName = "petcare_sid"

const (
	ViewList = "list"
	ViewMap  = "map"
)

// Manager resuelve la sesión de cada navegador a partir de una cookie
// con un id opaco (uuid). Todo el estado vive en el Store.
type Manager struct {
	store  Store
	secure bool
	newID  func() string
}

func NewManager(store Store, secureCookie bool) *Manager {
	return &Manager{store: store, secure: secureCookie, newID: uuid.NewString}
}

// Load devuelve la sesión del request. Si no hay cookie válida, genera un id
// nuevo y emite la cookie en la respuesta.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return &Session{ID: c.Value, store: m.store, mgr: m}
		}
	}

	id := m.newID()
	m.setCookie(w, id)
	return &Session{ID: id, store: m.store, mgr: m}
}

// carriedKeys sobreviven a la rotación del id (todo lo que no es credencial).
var carriedKeys = []Key{KeyRedirectAfterLogin, KeyViewMode}

// Renew rota el id de la sesión antes de guardar credenciales: un id que
// llegó en la cookie (quizá plantado) nunca queda autenticado.
// Copia las claves no sensibles, borra el id viejo y re-emite la cookie.
func (m *Manager) Renew(ctx context.Context, w http.ResponseWriter, s *Session) error {
	old := s.ID
	id := m.newID()

	for _, k := range carriedKeys {
		v, ok, err := m.store.Get(ctx, old, k)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := m.store.Set(ctx, id, k, v); err != nil {
			return err
		}
	}
	if err := m.store.Clear(ctx, old); err != nil {
		return err
	}

	m.setCookie(w, id)
	s.ID = id
	return nil
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session es la única puerta de acceso al estado persistido (get/set/clear).
type Session struct {
	ID    string
	store Store
	mgr   *Manager
}

// Renew rota el id (ver Manager.Renew).
func (s *Session) Renew(ctx context.Context, w http.ResponseWriter) error {
	return s.mgr.Renew(ctx, w, s)
}

func (s *Session) AccessToken(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, s.ID, KeyAccessToken)
	return strings.TrimSpace(v), err
}

func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, s.ID, KeyRefreshToken)
	return strings.TrimSpace(v), err
}

func (s *Session) SetTokens(ctx context.Context, p auth.TokenPair) error {
	if err := s.store.Set(ctx, s.ID, KeyAccessToken, p.AccessToken); err != nil {
		return err
	}
	return s.store.Set(ctx, s.ID, KeyRefreshToken, p.RefreshToken)
}

// Clear borra todo el estado de la sesión (logout o token ilegible).
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Clear(ctx, s.ID)
}

// SetRedirect guarda el destino post-login. Sólo paths locales.
func (s *Session) SetRedirect(ctx context.Context, target string) error {
	if !IsLocalPath(target) {
		return nil
	}
	return s.store.Set(ctx, s.ID, KeyRedirectAfterLogin, target)
}

// TakeRedirect lee y borra el destino post-login (one-shot).
func (s *Session) TakeRedirect(ctx context.Context) (string, error) {
	v, ok, err := s.store.Get(ctx, s.ID, KeyRedirectAfterLogin)
	if err != nil || !ok {
		return "", err
	}
	if err := s.store.Delete(ctx, s.ID, KeyRedirectAfterLogin); err != nil {
		return "", err
	}
	if !IsLocalPath(v) {
		return "", nil
	}
	return v, nil
}

func (s *Session) ViewMode(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, s.ID, KeyViewMode)
	if err != nil {
		return ViewList, err
	}
	if v != ViewMap {
		return ViewList, nil
	}
	return ViewMap, nil
}

func (s *Session) SetViewMode(ctx context.Context, mode string) error {
	if mode != ViewMap {
		mode = ViewList
	}
	return s.store.Set(ctx, s.ID, KeyViewMode, mode)
}

// IsLocalPath evita open redirects: "/x" sí, "//host" o "http://..." no.
func IsLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}

type ctxKey string

const sessionKey ctxKey = "session"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}
