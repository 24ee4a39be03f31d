package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	// ErrUnavailable: la request no llegó a tener respuesta HTTP (red, DNS, ctx).
	ErrUnavailable = errors.New("httpclient: backend unavailable")
	// ErrDecode: hubo respuesta 2xx pero el body no es el JSON esperado.
	ErrDecode = errors.New("httpclient: invalid response body")
)

type Options struct {
	BaseURL string
	// Timeout <= 0 => sin timeout.
	Timeout time.Duration
	// Transport opcional (tests).
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// Client envuelve un *resty.Client apuntando al origen fijo del backend.
// Cada llamada es exactamente una request: sin retry ni refresh de token.
type Client struct {
	rc      *resty.Client
	BaseURL string
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
	}

	rc := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if base != "" {
		rc.SetBaseURL(base)
	}
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	if opts.Transport != nil {
		rc.SetTransport(opts.Transport)
	}
	if opts.Logger != nil {
		rc.SetLogger(opts.Logger.Named("resty").Sugar())
	}

	return &Client{rc: rc, BaseURL: base}, nil
}

// File es una parte multipart (upload de imágenes).
type File struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// Request describe una llamada al backend.
// - Path: relativo a BaseURL o URL absoluta
// - Token: bearer opcional (header estático)
// - JSON: body JSON opcional
// - Form/Files: si alguno viene, el body es multipart
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Token  string
	JSON   any
	Form   map[string]string
	Files  []File
}

func (r Request) multipart() bool {
	return len(r.Form) > 0 || len(r.Files) > 0
}

// HTTPError representa una respuesta no-2xx.
// Message es el mensaje legible del backend (detail / message) si vino.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, e.Message)
	}
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Do ejecuta la request y decodifica el JSON de respuesta en out (si out != nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c == nil || c.rc == nil {
		return errors.New("httpclient: nil client")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("httpclient: empty url")
	}
	if !isAbsolute(req.Path) && c.BaseURL == "" {
		return errors.New("httpclient: relative path requires BaseURL")
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := c.rc.R().SetContext(ctx)
	if tok := strings.TrimSpace(req.Token); tok != "" {
		r.SetAuthToken(tok)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}

	switch {
	case req.multipart():
		if len(req.Form) > 0 {
			r.SetMultipartFormData(req.Form)
		}
		for _, f := range req.Files {
			ct := f.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			r.SetMultipartField(f.Field, f.Name, ct, f.Reader)
		}
	case req.JSON != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.JSON)
	}

	resp, err := r.Execute(method, req.Path)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, req.Path, err)
	}

	raw := resp.Body()
	if !resp.IsSuccess() {
		return &HTTPError{
			StatusCode: resp.StatusCode(),
			Message:    extractMessage(raw),
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// AsHTTPError devuelve el *HTTPError si err lo envuelve.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// StatusCode devuelve el status del backend, o 0 si no hubo respuesta HTTP.
func StatusCode(err error) int {
	if he, ok := AsHTTPError(err); ok {
		return he.StatusCode
	}
	return 0
}

// extractMessage lee "detail" (string o lista de {msg}) y luego "message".
func extractMessage(raw []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &body) != nil {
		return ""
	}

	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if m := strings.TrimSpace(it.Msg); m != "" {
					msgs = append(msgs, m)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	return strings.TrimSpace(body.Message)
}

func isAbsolute(pathOrURL string) bool {
	return strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://")
}
