package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"petcare-web/internal/middleware"
	"petcare-web/internal/mutation"
	"petcare-web/internal/platform/httpclient"
	authport "petcare-web/internal/ports/auth"
	"petcare-web/internal/render"
	"petcare-web/internal/session"
	"petcare-web/internal/validate"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	LoginPath   = "/login"
	defaultHome = "/user"

	loginFailed    = "Incorrect email or password."
	registerFailed = "Registration failed."
	forgotNotice   = "If this email is registered, a password reset link will be sent."
)

func RegisterRoutes(r chi.Router, svc *Service, rd *render.Renderer, log *zap.Logger) {
	r.Get(LoginPath, loginPageHandler(rd))
	r.Post(LoginPath, loginHandler(svc, rd, log))
	r.Get("/register", registerPageHandler(rd))
	r.Post("/register", registerHandler(svc, rd, log))
	r.Post("/logout", logoutHandler(svc, log))
	r.Get("/forgot-password", forgotPageHandler(rd))
	r.Post("/forgot-password", forgotHandler(svc, log))
	r.Get("/reset-password", resetPageHandler(rd))
	r.Post("/reset-password", resetHandler(svc, rd, log))

	r.Get("/api/session", sessionAPIHandler())
}

type loginPage struct {
	Email string
}

type registerPage struct {
	Role     string
	Title    string
	Subtitle string
	Name     string
	Email    string
}

type resetPage struct {
	Token string
}

var roleCopy = map[string][2]string{
	"owner":   {"Register as Pet Owner", "Create an account to manage pets, appointments, and reports."},
	"clinic":  {"Register as Clinic", "Join PetCare as a veterinary clinic."},
	"welfare": {"Register as Welfare Partner", "Contribute to animal welfare and reporting."},
}

func newRegisterPage(role string) registerPage {
	c := roleCopy[role]
	return registerPage{Role: role, Title: c[0], Subtitle: c[1]}
}

func loginPageHandler(rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.Page(w, http.StatusOK, "login", render.NewView(r, "Sign In", loginPage{}))
	}
}

// loginHandler no usa mutation.Handle: el destino depende de la sesión
// (redirect guardado por el guard) y se resuelve después de la llamada.
func loginHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in := Credentials{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}
		fail := func(msg string) {
			v := render.NewView(r, "Sign In", loginPage{Email: in.Email})
			v.Error = msg
			rd.Page(w, http.StatusUnprocessableEntity, "login", v)
		}

		if err := validate.Required(
			validate.Field{Name: "Email", Value: in.Email},
			validate.Field{Name: "Password", Value: in.Password},
		); err != nil {
			fail(mutation.Message(err, loginFailed))
			return
		}

		s, ok := session.FromContext(ctx)
		if !ok {
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}

		pair, err := svc.Login(ctx, in)
		if err != nil {
			log.Info("login failed", zap.Int("status", httpclient.StatusCode(err)), zap.Error(err))
			fail(mutation.Message(err, loginFailed))
			return
		}
		if err := signIn(ctx, w, s, pair); err != nil {
			log.Error("persist tokens failed", zap.Error(err))
			fail(mutation.GenericFailure)
			return
		}

		target, err := s.TakeRedirect(ctx)
		if err != nil {
			log.Warn("read redirect target failed", zap.Error(err))
		}
		if target == "" {
			target = defaultHome
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// signIn rota el id de sesión y recién ahí guarda los tokens.
func signIn(ctx context.Context, w http.ResponseWriter, s *session.Session, pair authport.TokenPair) error {
	if err := s.Renew(ctx, w); err != nil {
		return err
	}
	return s.SetTokens(ctx, pair)
}

func registerPageHandler(rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		if !ValidRole(role) {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		rd.Page(w, http.StatusOK, "register", render.NewView(r, "Register", newRegisterPage(role)))
	}
}

func registerHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := Registration{
			Name:     strings.TrimSpace(r.FormValue("name")),
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
			Role:     r.FormValue("role"),
		}
		confirm := r.FormValue("confirm_password")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "auth.register",
			Validate: func() error {
				if !ValidRole(in.Role) {
					return validate.Errorf("Invalid role.")
				}
				return validate.First(
					validate.Required(
						validate.Field{Name: "Name", Value: in.Name},
						validate.Field{Name: "Email", Value: in.Email},
					),
					validate.Password(in.Password, confirm),
				)
			},
			Call: func(ctx context.Context) error {
				pair, err := svc.Register(ctx, in)
				if err != nil {
					return err
				}
				s, ok := session.FromContext(ctx)
				if !ok {
					return validate.Errorf("%s", mutation.GenericFailure)
				}
				return signIn(ctx, w, s, pair)
			},
			Success:  defaultHome,
			Fallback: registerFailed,
			Rerender: func(w http.ResponseWriter, msg string) {
				page := newRegisterPage(in.Role)
				page.Name, page.Email = in.Name, in.Email
				v := render.NewView(r, "Register", page)
				v.Error = msg
				rd.Page(w, http.StatusUnprocessableEntity, "register", v)
			},
		})
	}
}

func logoutHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s, ok := session.FromContext(ctx); ok {
			refresh, _ := s.RefreshToken(ctx)
			// el resultado del backend no cambia el logout local
			if err := svc.Logout(ctx, refresh); err != nil {
				log.Debug("backend logout failed", zap.Error(err))
			}
			if err := s.Clear(ctx); err != nil {
				log.Warn("clear session failed", zap.Error(err))
			}
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func forgotPageHandler(rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.Page(w, http.StatusOK, "forgot_password", render.NewView(r, "Forgot Password", nil))
	}
}

// forgotHandler siempre muestra el mismo aviso: no revela si el email existe.
func forgotHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.FormValue("email"))

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "auth.forgot_password",
			Validate: func() error {
				if email == "" {
					return validate.Errorf("Please enter your email address.")
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				if err := svc.ForgotPassword(ctx, email); err != nil {
					log.Warn("forgot password request failed", zap.Error(err))
				}
				return nil
			},
			Success: "/forgot-password",
			Failure: "/forgot-password",
			Notice:  forgotNotice,
		})
	}
}

func resetPageHandler(rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(r.URL.Query().Get("token"))
		if tok == "" {
			http.Redirect(w, r, mutation.WithParam("/forgot-password", "error", "Invalid or expired token"), http.StatusSeeOther)
			return
		}
		rd.Page(w, http.StatusOK, "reset_password", render.NewView(r, "Reset Password", resetPage{Token: tok}))
	}
}

func resetHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(r.FormValue("token"))
		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "auth.reset_password",
			Validate: func() error {
				if tok == "" {
					return validate.Errorf("Invalid or expired token")
				}
				return validate.Password(password, confirm)
			},
			Call: func(ctx context.Context) error {
				return svc.ResetPassword(ctx, tok, password)
			},
			Success:  LoginPath,
			Notice:   "Password reset successful. Please sign in.",
			Fallback: "Invalid or expired token",
			Rerender: func(w http.ResponseWriter, msg string) {
				v := render.NewView(r, "Reset Password", resetPage{Token: tok})
				v.Error = msg
				rd.Page(w, http.StatusUnprocessableEntity, "reset_password", v)
			},
		})
	}
}

type sessionInfo struct {
	SignedIn bool   `json:"signed_in"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
}

// sessionAPIHandler godoc
// @Summary      Current session
// @Description  Presentation-only view of the browser session (claims are not verified).
// @Tags         session
// @Produce      json
// @Success      200  {object}  auth.sessionInfo
// @Router       /api/session [get]
func sessionAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := sessionInfo{}
		if id, ok := middleware.GetIdentity(r.Context()); ok {
			info = sessionInfo{SignedIn: true, UserID: id.Claims.UserID, Email: id.Claims.Email}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(info)
	}
}
