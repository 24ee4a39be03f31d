package users

import (
	"context"
	"net/http"

	"petcare-web/internal/domain/clinics"
	"petcare-web/internal/middleware"
	"petcare-web/internal/mutation"
	"petcare-web/internal/render"
	"petcare-web/internal/session"
	"petcare-web/internal/validate"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service, clinicsSvc *clinics.Service, rd *render.Renderer, guard func(http.Handler) http.Handler, loginPath string, log *zap.Logger) {
	r.Group(func(pr chi.Router) {
		pr.Use(guard)
		pr.Get("/user", profileHandler(svc, clinicsSvc, rd, loginPath, log))
		pr.Post("/user/password", changePasswordHandler(svc, log))
	})
}

type profilePage struct {
	User     User
	Intro    string
	Actions  []Action
	IsClinic bool
	Clinics  render.List[clinics.Clinic]
}

func profileHandler(svc *Service, clinicsSvc *clinics.Service, rd *render.Renderer, loginPath string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, _ := middleware.GetIdentity(ctx)

		u, err := svc.Get(ctx, id.Token, id.Claims.UserID)
		if err != nil {
			// sin perfil no hay dashboard: se descarta la sesión
			log.Info("profile load failed, clearing session", zap.String("user_id", id.Claims.UserID), zap.Error(err))
			if s, ok := session.FromContext(ctx); ok {
				if err := s.Clear(ctx); err != nil {
					log.Warn("clear session failed", zap.Error(err))
				}
			}
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		intro, actions := Dashboard(u.Role)
		page := profilePage{User: u, Intro: intro, Actions: actions, IsClinic: u.Role == RoleClinic}
		if page.IsClinic {
			owned, err := clinicsSvc.ByOwner(ctx, id.Token, id.Claims.UserID)
			page.Clinics = render.NewList(owned, err, "Failed to load clinic data.")
		}

		rd.Page(w, http.StatusOK, "user", render.NewView(r, "My Account", page))
	}
}

func changePasswordHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name:     "user.password",
			Validate: func() error { return validate.Password(password, confirm) },
			Call: func(ctx context.Context) error {
				id, _ := middleware.GetIdentity(ctx)
				return svc.ChangePassword(ctx, id.Token, id.Claims.UserID, password)
			},
			Success:  "/user",
			Failure:  "/user",
			Notice:   "Password updated successfully",
			Fallback: "Failed to update password.",
		})
	}
}
