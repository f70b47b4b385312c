package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/girnardairy/milkroute-backend/api/responses"
	"github.com/girnardairy/milkroute-backend/api/validators"
	"github.com/girnardairy/milkroute-backend/internal/sheet"
	"github.com/girnardairy/milkroute-backend/internal/sheet/export"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/logger"
)

const sheetDateLayout = "2006-01-02"

// sheetRequest is the wire shape shared by the totals, save and export
// endpoints. Mode selects which entry surface produced the rows; exactly
// one of the payload fields must be set and must match the mode.
type sheetRequest struct {
	Date        string             `json:"date" validate:"required"`
	Area        string             `json:"area" validate:"required"`
	Mode        string             `json:"mode" validate:"required,oneof=grid form spreadsheet bulk"`
	Grid        *sheet.ColumnGrid  `json:"grid,omitempty"`
	Form        *sheet.EntryForm   `json:"form,omitempty"`
	Spreadsheet *sheet.Spreadsheet `json:"spreadsheet,omitempty"`
	Bulk        *sheet.BulkGrid    `json:"bulk,omitempty"`
}

func (p sheetRequest) toInput() (sheet.Input, error) {
	date, err := time.Parse(sheetDateLayout, p.Date)
	if err != nil {
		return sheet.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date, expected YYYY-MM-DD")
	}

	var source sheet.RowSource
	switch p.Mode {
	case "grid":
		if p.Grid == nil {
			return sheet.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "grid payload required for grid mode")
		}
		source = *p.Grid
	case "form":
		if p.Form == nil {
			return sheet.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "form payload required for form mode")
		}
		source = *p.Form
	case "spreadsheet":
		if p.Spreadsheet == nil {
			return sheet.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet payload required for spreadsheet mode")
		}
		source = *p.Spreadsheet
	case "bulk":
		if p.Bulk == nil {
			return sheet.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "bulk payload required for bulk mode")
		}
		source = *p.Bulk
	default:
		return sheet.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown entry mode")
	}

	return sheet.Input{Date: date, Area: p.Area, Source: source}, nil
}

// SheetTotals recomputes totals for an in-progress sheet without saving.
func SheetTotals(svc *sheet.Service, dir sheet.CustomerDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sheetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		in, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.Totals(r.Context(), in, dir)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, preview)
	}
}

// SheetSave materializes one order per eligible row. The route sits behind
// the idempotency middleware, so a client retry replays the first outcome
// instead of creating duplicate orders.
func SheetSave(svc *sheet.Service, dir sheet.CustomerDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sheetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		in, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Save(r.Context(), in, dir)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

// SheetExport renders the sheet as an xlsx download.
func SheetExport(svc *sheet.Service, dir sheet.CustomerDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sheetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		in, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.Totals(r.Context(), in, dir)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buf, err := export.Workbook(in.Date, in.Area, preview.Rows, preview.Totals)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("delivery-sheet-%s-%s.xlsx", in.Date.Format(sheetDateLayout), in.Area)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}
