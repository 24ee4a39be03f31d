package router

import (
	"net/http"

	_ "petcare-web/docs"
	"petcare-web/internal/domain/appointments"
	authdomain "petcare-web/internal/domain/auth"
	"petcare-web/internal/domain/clinics"
	"petcare-web/internal/domain/reports"
	"petcare-web/internal/domain/services"
	"petcare-web/internal/domain/users"
	"petcare-web/internal/middleware"
	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/ports/auth"
	"petcare-web/internal/render"
	"petcare-web/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	Logger  *zap.Logger
	Backend *httpclient.Client
	Store   session.Store
	Decoder auth.TokenDecoder

	// CookieSecure marca la cookie de sesión como Secure (detrás de TLS).
	CookieSecure bool
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rd, err := render.New(log.Named("render"))
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", render.Assets("/assets/"))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	reportsSvc := reports.NewService(opts.Backend)
	apptsSvc := appointments.NewService(opts.Backend)
	clinicsSvc := clinics.NewService(opts.Backend)
	authSvc := authdomain.NewService(opts.Backend)
	usersSvc := users.NewService(opts.Backend)

	mgr := session.NewManager(opts.Store, opts.CookieSecure)
	guard := middleware.RequireSession(opts.Decoder, authdomain.LoginPath, log.Named("guard"))

	// Todo lo que usa sesión (páginas + API JSON)
	r.Group(func(sr chi.Router) {
		sr.Use(middleware.Sessions(mgr))
		sr.Use(middleware.AuthContext(opts.Decoder))

		sr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/reports", http.StatusSeeOther)
		})

		// Rutas por módulo
		authdomain.RegisterRoutes(sr, authSvc, rd, log.Named("auth"))
		users.RegisterRoutes(sr, usersSvc, clinicsSvc, rd, guard, authdomain.LoginPath, log.Named("users"))
		reports.RegisterRoutes(sr, reportsSvc, rd, guard, log.Named("reports"))
		clinics.RegisterRoutes(sr, clinicsSvc, apptsSvc, rd, guard, log.Named("clinics"))
		clinics.RegisterAPI(sr, clinicsSvc, apptsSvc)
		appointments.RegisterRoutes(sr, apptsSvc, rd, guard, log.Named("appointments"))
		services.RegisterRoutes(sr, rd, log.Named("services"))
	})

	return r, nil
}
