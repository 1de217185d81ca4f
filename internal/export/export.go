// Package export renders leads as an XLSX workbook.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

const (
	// FilterAll selects every non-hidden lead.
	FilterAll = "ALL"

	SheetName  = "Leads"
	DateLayout = "02/01/2006 15:04"
	MimeType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ErrNothingToExport = errors.New("No hay leads para descargar con los filtros aplicados")

type column struct {
	header string
	width  float64
	value  func(entity.Lead) string
}

var columns = []column{
	{"Fecha", 20, func(l entity.Lead) string { return l.CreatedAt.Local().Format(DateLayout) }},
	{"Nombre", 25, func(l entity.Lead) string { return l.Name }},
	{"Email", 30, func(l entity.Lead) string { return l.Email }},
	{"Teléfono", 15, func(l entity.Lead) string { return l.Phone }},
	{"Clínica", 25, func(l entity.Lead) string { return deref(l.Clinic) }},
	{"Facturación", 20, func(l entity.Lead) string { return deref(l.Revenue) }},
	{"Reto", 40, func(l entity.Lead) string { return deref(l.Challenge) }},
	{"Estado", 20, func(l entity.Lead) string { return l.EffectiveStatus() }},
	{"Notas", 40, func(l entity.Lead) string { return l.NotesText() }},
}

// Headers returns the header row in column order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Filter applies the list view filter: ALL keeps every lead outside the
// hidden subset, any other value keeps exact effective-status matches.
func Filter(leads []entity.Lead, filter string) []entity.Lead {
	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		status := l.EffectiveStatus()
		if filter == FilterAll || filter == "" {
			if entity.IsHiddenStatus(status) {
				continue
			}
		} else if status != filter {
			continue
		}
		out = append(out, l)
	}
	return out
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename returns leads_<filter>_<YYYY-MM-DD>.xlsx.
func Filename(filter string, now time.Time) string {
	suffix := "todos"
	if filter != FilterAll && filter != "" {
		suffix = whitespace.ReplaceAllString(strings.ToLower(filter), "_")
	}
	return fmt.Sprintf("leads_%s_%s.xlsx", suffix, now.UTC().Format("2006-01-02"))
}

// Workbook builds the XLSX file with one row per lead.
func Workbook(leads []entity.Lead) ([]byte, error) {
	if len(leads) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.header

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return nil, fmt.Errorf("set width %s: %w", col, err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, lead := range leads {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = c.value(lead)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
