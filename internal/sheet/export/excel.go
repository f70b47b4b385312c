package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/girnardairy/milkroute-backend/internal/sheet"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/money"
)

const sheetName = "Delivery Sheet"

// Workbook renders a sheet pass as an xlsx file: one column per product
// code that appears on the sheet, one row per delivery row, and a totals
// row at the bottom. Amounts are printed in rupees; the caller streams the
// returned buffer as the HTTP response body.
func Workbook(date time.Time, area string, rows []*sheet.DeliveryRow, totals sheet.SheetTotals) (*bytes.Buffer, error) {
	codes := make([]string, 0, len(totals.PerProduct))
	for code := range totals.PerProduct {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rename sheet")
	}

	header := []any{fmt.Sprintf("Delivery Sheet %s / %s", date.Format("2006-01-02"), area)}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write title")
	}

	columns := []any{"Customer", "Area"}
	for _, code := range codes {
		columns = append(columns, code)
	}
	columns = append(columns, "Total Qty", "Amount")
	if err := f.SetSheetRow(sheetName, "A3", &columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write column header")
	}

	rowIdx := 4
	for _, row := range rows {
		cells := []any{row.CustomerName, row.Area}
		for _, code := range codes {
			cells = append(cells, row.Quantities[code])
		}
		cells = append(cells, row.TotalQuantity, row.TotalAmount.Rupees().StringFixed(2))
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowIdx), &cells); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write row")
		}
		rowIdx++
	}

	footer := []any{"Total", ""}
	for _, code := range codes {
		footer = append(footer, totals.PerProduct[code])
	}
	footer = append(footer, totals.TotalQuantity, money.Paise(totals.TotalAmountPaise).Rupees().StringFixed(2))
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowIdx), &footer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write totals row")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode workbook")
	}
	return buf, nil
}
