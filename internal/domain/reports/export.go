package reports

import (
	"bytes"
	"fmt"
	"net/http"

	"petcare-web/internal/middleware"
	"petcare-web/internal/mutation"
	"petcare-web/internal/render"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Reports"

var exportHeaders = []string{"ID", "Animal", "Condition", "Status", "Address", "Contact phone", "Description", "Created at"}

// BuildWorkbook arma un .xlsx con una fila por reporte, en el orden recibido.
func BuildWorkbook(items []Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(exportHeaders))
	for _, h := range exportHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, rep := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			rep.ID,
			rep.AnimalType,
			rep.Condition,
			string(rep.Status),
			rep.Address,
			rep.Phone(),
			rep.Description,
			rep.CreatedAt,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// exportReportsHandler exporta la misma página (skip/status) que se está viendo.
func exportReportsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		skip := render.ParseSkip(q)
		status, _ := ParseStatus(q.Get("status"))

		items, err := svc.List(r.Context(), middleware.Token(r.Context()), skip, status)
		if err != nil {
			log.Warn("export reports failed", zap.Error(err))
			back := mutation.WithParam("/admin/reports", "error", mutation.Message(err, "Failed to export reports."))
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		}

		data, err := BuildWorkbook(items)
		if err != nil {
			log.Error("build workbook failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="reports.xlsx"`)
		_, _ = w.Write(data)
	}
}
