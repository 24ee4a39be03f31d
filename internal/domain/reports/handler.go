package reports

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"petcare-web/internal/middleware"
	"petcare-web/internal/mutation"
	"petcare-web/internal/render"
	"petcare-web/internal/validate"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func RegisterRoutes(r chi.Router, svc *Service, rd *render.Renderer, guard func(http.Handler) http.Handler, log *zap.Logger) {
	// Públicas
	r.Get("/reports", listReportsHandler(svc, rd, log))
	r.Get("/reports/{reportID}", reportDetailsHandler(svc, rd))

	r.Group(func(pr chi.Router) {
		pr.Use(guard)

		pr.Get("/reports/new", newReportPageHandler(rd))
		pr.Post("/reports", createReportHandler(svc, rd, log))
		pr.Post("/reports/{reportID}/messages", sendMessageHandler(svc, log))

		// Reportes propios
		pr.Get("/my-reports", myReportsHandler(svc, rd, log))
		pr.Get("/my-reports/{reportID}/edit", editReportPageHandler(svc, rd))
		pr.Post("/my-reports/{reportID}", updateReportHandler(svc, log, "/my-reports/{id}/edit", true))
		pr.Post("/my-reports/{reportID}/images", uploadImageHandler(svc, log))
		pr.Post("/my-reports/{reportID}/images/{imageID}/delete", deleteImageHandler(svc, log, "/my-reports/{id}/edit"))
		pr.Post("/my-reports/{reportID}/delete", deleteReportHandler(svc, log))

		// Administración (el backend valida el rol)
		pr.Get("/admin/reports", adminReportsHandler(svc, rd, log))
		pr.Get("/admin/reports/export.xlsx", exportReportsHandler(svc, log))
		pr.Get("/admin/reports/{reportID}", adminReportDetailsHandler(svc, rd))
		pr.Post("/admin/reports/{reportID}", updateReportHandler(svc, log, "/admin/reports/{id}", false))
		pr.Post("/admin/reports/{reportID}/status", updateStatusHandler(svc, log))
		pr.Post("/admin/reports/{reportID}/notes", addNoteHandler(svc, log))
		pr.Post("/admin/reports/{reportID}/images/{imageID}/delete", deleteImageHandler(svc, log, "/admin/reports/{id}"))
	})
}

type reportsPage struct {
	Reports  render.List[Report]
	Pager    render.Pager
	Status   Status
	Statuses []Status
}

type reportDetailsPage struct {
	Report Report
	Images render.List[Image]
}

type reportFormPage struct {
	Form CreateInput
}

type editReportPage struct {
	Report     Report
	Images     render.List[Image]
	Locked     bool
	ImageCount int
	CanUpload  bool
	MaxImages  int
}

type adminReportsPage struct {
	Stats    render.Region[Stats]
	Reports  render.List[Report]
	Pager    render.Pager
	Status   Status
	Statuses []Status
}

type adminReportDetailsPage struct {
	Report   Report
	Images   render.List[Image]
	Notes    render.List[Note]
	Messages render.List[Message]
	Statuses []Status
}

func listReportsHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		skip := render.ParseSkip(q)
		status, _ := ParseStatus(q.Get("status"))

		items, err := svc.List(r.Context(), "", skip, status)
		if err != nil {
			log.Warn("list reports failed", zap.Error(err))
		}

		rd.Page(w, http.StatusOK, "reports", render.NewView(r, "Rescue Reports", reportsPage{
			Reports:  render.NewList(items, err, "Failed to load reports."),
			Pager:    render.NewPager("/reports", q, skip, PageSize, len(items)),
			Status:   status,
			Statuses: Statuses,
		}))
	}
}

func reportDetailsHandler(svc *Service, rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")

		// Regiones independientes: cada una con su propio error.
		var (
			report    Report
			reportErr error
			images    []Image
			imagesErr error
			g         errgroup.Group
		)
		g.Go(func() error { report, reportErr = svc.Get(r.Context(), "", id); return nil })
		g.Go(func() error { images, imagesErr = svc.Images(r.Context(), "", id); return nil })
		_ = g.Wait()

		if reportErr != nil {
			http.Redirect(w, r, mutation.WithParam("/reports", "error", "Report not found."), http.StatusSeeOther)
			return
		}

		rd.Page(w, http.StatusOK, "report_details", render.NewView(r, "Report Details", reportDetailsPage{
			Report: report,
			Images: render.NewList(images, imagesErr, "Failed to load images."),
		}))
	}
}

func newReportPageHandler(rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.Page(w, http.StatusOK, "report_new", render.NewView(r, "Report an Animal", reportFormPage{}))
	}
}

func createReportHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, uploadErr := mutation.ReadUpload(r, "image")
		in := CreateInput{
			AnimalType:   r.FormValue("animal_type"),
			Condition:    r.FormValue("condition"),
			Description:  r.FormValue("description"),
			Address:      r.FormValue("address"),
			ContactPhone: strings.TrimSpace(r.FormValue("contact_phone")),
			Image:        img,
		}

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "report.create",
			Validate: func() error {
				return validate.First(
					validate.Required(
						validate.Field{Name: "Animal type", Value: in.AnimalType},
						validate.Field{Name: "Condition", Value: in.Condition},
						validate.Field{Name: "Description", Value: in.Description},
						validate.Field{Name: "Address", Value: in.Address},
					),
					validate.Phone(in.ContactPhone),
					uploadErr,
				)
			},
			Call: func(ctx context.Context) error {
				_, err := svc.Create(ctx, middleware.Token(ctx), in)
				return err
			},
			Success:  "/my-reports",
			Notice:   "Report submitted successfully.",
			Fallback: "Failed to create report.",
			Rerender: func(w http.ResponseWriter, msg string) {
				v := render.NewView(r, "Report an Animal", reportFormPage{Form: in})
				v.Error = msg
				rd.Page(w, http.StatusUnprocessableEntity, "report_new", v)
			},
		})
	}
}

func sendMessageHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		msg := strings.TrimSpace(r.FormValue("message"))
		back := "/reports/" + id

		mutation.Handle(w, r, log, mutation.Mutation{
			Name:     "report.message",
			Validate: func() error { return validate.Required(validate.Field{Name: "Message", Value: msg}) },
			Call: func(ctx context.Context) error {
				return svc.SendMessage(ctx, middleware.Token(ctx), id, msg)
			},
			Success:  back,
			Failure:  back,
			Notice:   "Message sent successfully.",
			Fallback: "Failed to send message.",
		})
	}
}

func myReportsHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Mine(r.Context(), middleware.Token(r.Context()))
		if err != nil {
			log.Warn("list my reports failed", zap.Error(err))
		}
		rd.Page(w, http.StatusOK, "my_reports", render.NewView(r, "My Reports",
			render.NewList(items, err, "Failed to load your reports.")))
	}
}

func editReportPageHandler(svc *Service, rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		token := middleware.Token(r.Context())

		var (
			report    Report
			reportErr error
			images    []Image
			imagesErr error
			g         errgroup.Group
		)
		g.Go(func() error { report, reportErr = svc.Get(r.Context(), token, id); return nil })
		g.Go(func() error { images, imagesErr = svc.Images(r.Context(), token, id); return nil })
		_ = g.Wait()

		if reportErr != nil {
			http.Redirect(w, r, mutation.WithParam("/my-reports", "error", "Report not found."), http.StatusSeeOther)
			return
		}

		locked := report.Status.Locked()
		rd.Page(w, http.StatusOK, "report_edit", render.NewView(r, "Edit Report", editReportPage{
			Report:     report,
			Images:     render.NewList(images, imagesErr, "Failed to load images."),
			Locked:     locked,
			ImageCount: len(images),
			CanUpload:  !locked && imagesErr == nil && len(images) < validate.MaxImagesPerReport,
			MaxImages:  validate.MaxImagesPerReport,
		}))
	}
}

// backPath reemplaza {id} en el destino de vuelta.
func backPath(pattern, id string) string {
	return strings.ReplaceAll(pattern, "{id}", id)
}

// lockedByForm mira el estado con el que se cargó la página (hidden
// report_status): un tab viejo no manda cambios a un reporte cerrado.
// El backend sigue siendo quien decide.
func lockedByForm(r *http.Request) error {
	if Status(strings.TrimSpace(r.FormValue("report_status"))).Locked() {
		return validate.Errorf("This report can no longer be edited.")
	}
	return nil
}

// imageCountFromForm lee el conteo de la última carga de la página.
// Si falta o no es un número el submit no es confiable.
func imageCountFromForm(r *http.Request) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue("image_count")))
	if err != nil || n < 0 {
		return 0, validate.Errorf("Invalid form submission.")
	}
	return n, nil
}

func updateReportHandler(svc *Service, log *zap.Logger, back string, ownerEdit bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		to := backPath(back, id)

		in := UpdateInput{
			Condition:   strings.TrimSpace(r.FormValue("condition")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Address:     strings.TrimSpace(r.FormValue("address")),
		}
		if p := strings.TrimSpace(r.FormValue("contact_phone")); p != "" {
			in.ContactPhone = &p
		}

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "report.update",
			Validate: func() error {
				if ownerEdit {
					if err := lockedByForm(r); err != nil {
						return err
					}
				}
				return validate.First(
					validate.Required(
						validate.Field{Name: "Condition", Value: in.Condition},
						validate.Field{Name: "Description", Value: in.Description},
						validate.Field{Name: "Address", Value: in.Address},
					),
					validate.Phone(r.FormValue("contact_phone")),
				)
			},
			Call: func(ctx context.Context) error {
				_, err := svc.Update(ctx, middleware.Token(ctx), id, in)
				return err
			},
			Success:  to,
			Failure:  to,
			Notice:   "Report updated successfully.",
			Fallback: "Update failed.",
		})
	}
}

func uploadImageHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		to := "/my-reports/" + id + "/edit"

		img, uploadErr := mutation.ReadUpload(r, "file")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "report.image.upload",
			Validate: func() error {
				if err := lockedByForm(r); err != nil {
					return err
				}
				count, err := imageCountFromForm(r)
				if err != nil {
					return err
				}
				if err := validate.ImageCount(count); err != nil {
					return err
				}
				if uploadErr != nil {
					return uploadErr
				}
				if img == nil {
					return validate.Errorf("Please choose an image.")
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				return svc.UploadImage(ctx, middleware.Token(ctx), id, img)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Image uploaded.",
			Fallback: "Failed to upload image.",
		})
	}
}

func deleteImageHandler(svc *Service, log *zap.Logger, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		imageID := chi.URLParam(r, "imageID")
		to := backPath(back, id)

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "report.image.delete",
			Call: func(ctx context.Context) error {
				return svc.DeleteImage(ctx, middleware.Token(ctx), imageID)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Image deleted.",
			Fallback: "Failed to delete image.",
		})
	}
}

func deleteReportHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "report.delete",
			Call: func(ctx context.Context) error {
				return svc.Delete(ctx, middleware.Token(ctx), id)
			},
			Success:  "/my-reports",
			Failure:  "/my-reports/" + id + "/edit",
			Notice:   "Report deleted.",
			Fallback: "Failed to delete report.",
		})
	}
}

func adminReportsHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		skip := render.ParseSkip(q)
		status, _ := ParseStatus(q.Get("status"))
		token := middleware.Token(r.Context())

		var (
			stats    Stats
			statsErr error
			items    []Report
			listErr  error
			g        errgroup.Group
		)
		g.Go(func() error { stats, statsErr = svc.Stats(r.Context(), token); return nil })
		g.Go(func() error { items, listErr = svc.List(r.Context(), token, skip, status); return nil })
		_ = g.Wait()

		if listErr != nil {
			log.Warn("admin list reports failed", zap.Error(listErr))
		}

		rd.Page(w, http.StatusOK, "admin_reports", render.NewView(r, "Manage Reports", adminReportsPage{
			Stats:    render.NewRegion(stats, statsErr, "Failed to load statistics."),
			Reports:  render.NewList(items, listErr, "Failed to load reports."),
			Pager:    render.NewPager("/admin/reports", q, skip, PageSize, len(items)),
			Status:   status,
			Statuses: Statuses,
		}))
	}
}

func adminReportDetailsHandler(svc *Service, rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		token := middleware.Token(r.Context())

		var (
			report      Report
			reportErr   error
			images      []Image
			imagesErr   error
			notes       []Note
			notesErr    error
			messages    []Message
			messagesErr error
			g           errgroup.Group
		)
		g.Go(func() error { report, reportErr = svc.Get(r.Context(), token, id); return nil })
		g.Go(func() error { images, imagesErr = svc.Images(r.Context(), token, id); return nil })
		g.Go(func() error { notes, notesErr = svc.Notes(r.Context(), token, id); return nil })
		g.Go(func() error { messages, messagesErr = svc.Messages(r.Context(), token, id); return nil })
		_ = g.Wait()

		if reportErr != nil {
			http.Redirect(w, r, mutation.WithParam("/admin/reports", "error", "Report not found."), http.StatusSeeOther)
			return
		}

		rd.Page(w, http.StatusOK, "admin_report_details", render.NewView(r, "Report #"+id, adminReportDetailsPage{
			Report:   report,
			Images:   render.NewList(images, imagesErr, "Failed to load images."),
			Notes:    render.NewList(notes, notesErr, "Failed to load notes."),
			Messages: render.NewList(messages, messagesErr, "Failed to load messages."),
			Statuses: Statuses,
		}))
	}
}

func updateStatusHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		to := "/admin/reports/" + id
		status, ok := ParseStatus(r.FormValue("status"))

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "report.status",
			Validate: func() error {
				if !ok {
					return validate.Errorf("Invalid status.")
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				return svc.SetStatus(ctx, middleware.Token(ctx), id, status)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Status updated.",
			Fallback: "Failed to update status.",
		})
	}
}

func addNoteHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "reportID")
		to := "/admin/reports/" + id
		note := strings.TrimSpace(r.FormValue("note"))

		mutation.Handle(w, r, log, mutation.Mutation{
			Name:     "report.note",
			Validate: func() error { return validate.Required(validate.Field{Name: "Note", Value: note}) },
			Call: func(ctx context.Context) error {
				return svc.AddNote(ctx, middleware.Token(ctx), id, note)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Note added.",
			Fallback: "Failed to add note.",
		})
	}
}
