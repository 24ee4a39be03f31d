package mutation

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/validate"

	"go.uber.org/zap"
)

const (
	// NetworkFailure se muestra cuando no hubo respuesta del backend.
	NetworkFailure = "Server error. Please try again later."
	// GenericFailure es el fallback si el backend no mandó mensaje.
	GenericFailure = "Something went wrong. Please try again."
)

// Mutation liga un submit a UNA llamada del Resource Client.
// - Validate (opcional) corre antes: si falla, no hay request.
// - Call hace la llamada.
// - Success / Failure son los destinos del redirect (POST-redirect-GET);
//   la página destino vuelve a pedir los datos y renderiza.
// - Rerender (opcional) reemplaza el redirect de Failure: re-muestra el
//   formulario con lo que tipeó el usuario y el mensaje inline.
type Mutation struct {
	Name     string
	Validate func() error
	Call     func(ctx context.Context) error
	Success  string
	Failure  string
	Rerender func(w http.ResponseWriter, msg string)
	Notice   string
	Fallback string
}

// Handle ejecuta la mutación y redirige con ?notice= o ?error=.
func Handle(w http.ResponseWriter, r *http.Request, log *zap.Logger, m Mutation) {
	if m.Validate != nil {
		if err := m.Validate(); err != nil {
			m.fail(w, r, Message(err, m.Fallback))
			return
		}
	}

	if err := m.Call(r.Context()); err != nil {
		log.Warn("mutation failed",
			zap.String("mutation", m.Name),
			zap.Int("status", httpclient.StatusCode(err)),
			zap.Error(err),
		)
		m.fail(w, r, Message(err, m.Fallback))
		return
	}

	target := m.Success
	if m.Notice != "" {
		target = WithParam(target, "notice", m.Notice)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (m Mutation) fail(w http.ResponseWriter, r *http.Request, msg string) {
	if m.Rerender != nil {
		m.Rerender(w, msg)
		return
	}
	http.Redirect(w, r, WithParam(m.Failure, "error", msg), http.StatusSeeOther)
}

// Message traduce un error al texto inline que ve el usuario:
// validación => su mensaje; backend => su mensaje o fallback; red => genérico.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if fallback == "" {
		fallback = GenericFailure
	}
	if ve, ok := validate.As(err); ok {
		return ve.Msg
	}
	if he, ok := httpclient.AsHTTPError(err); ok {
		if he.Message != "" {
			return he.Message
		}
		return fallback
	}
	if errors.Is(err, httpclient.ErrUnavailable) || errors.Is(err, httpclient.ErrDecode) {
		return NetworkFailure
	}
	return fallback
}

// WithParam agrega (o reemplaza) un query param en un path local.
func WithParam(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
