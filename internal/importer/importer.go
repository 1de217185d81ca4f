// Package importer loads leads from a spreadsheet exported by the old
// landing form.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

const MissingPhone = "Sin teléfono"

var ErrNoSheet = errors.New("workbook has no sheets")

// BatchWriter persists leads in a single transaction.
type BatchWriter interface {
	CreateBatch(ctx context.Context, leads []entity.Lead) (int, error)
}

type Report struct {
	Rows       int
	Skipped    int
	Duplicates int
	Imported   int
}

// headerAliases maps a normalized header to a lead field.
var headerAliases = map[string]string{
	"nombre":            "name",
	"name":              "name",
	"email":             "email",
	"e-mail":            "email",
	"teléfono":          "phone",
	"telefono":          "phone",
	"phone":             "phone",
	"teléfono/móvil":    "phone",
	"móvil":             "phone",
	"clínica":           "clinic",
	"clinic":            "clinic",
	"clínica y ciudad":  "clinic",
	"facturación":       "revenue",
	"revenue":           "revenue",
	"facturación anual": "revenue",
	"reto":              "challenge",
	"challenge":         "challenge",
	"mayor reto":        "challenge",
	"fecha":             "date",
	"date":              "date",
	"fecha de registro": "date",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

type Importer struct {
	writer BatchWriter
	logger *zap.Logger
	now    func() time.Time
}

func New(writer BatchWriter, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{writer: writer, logger: logger, now: time.Now}
}

// Import parses the first sheet of r and stores the resulting leads.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Report, error) {
	leads, report, err := im.Parse(r)
	if err != nil {
		return report, err
	}
	if len(leads) == 0 {
		return report, nil
	}

	n, err := im.writer.CreateBatch(ctx, leads)
	if err != nil {
		return report, fmt.Errorf("store leads: %w", err)
	}
	report.Imported = n

	im.logger.Info("leads imported",
		zap.Int("rows", report.Rows),
		zap.Int("skipped", report.Skipped),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("imported", n),
	)
	return report, nil
}

// Parse reads the first sheet. Rows without name or email are skipped and
// rows sharing an email keep only the most recent one. Every lead gets
// status LEAD.
func (im *Importer) Parse(r io.Reader) ([]entity.Lead, Report, error) {
	var report Report

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, report, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, report, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, report, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, report, nil
	}

	fields := mapHeader(rows[0])
	byEmail := map[string]int{}
	var leads []entity.Lead

	for i, row := range rows[1:] {
		line := i + 2
		values := rowValues(fields, row)
		if isBlank(row) {
			continue
		}
		report.Rows++

		name, email := values["name"], values["email"]
		if name == "" || email == "" {
			report.Skipped++
			im.logger.Warn("row skipped: name and email are required", zap.Int("line", line))
			continue
		}

		lead := entity.Lead{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Phone:     values["phone"],
			Clinic:    entity.StringPtr(values["clinic"]),
			Revenue:   entity.StringPtr(values["revenue"]),
			Challenge: entity.StringPtr(values["challenge"]),
			CreatedAt: im.parseDate(values["date"]),
		}
		if lead.Phone == "" {
			lead.Phone = MissingPhone
		}
		status := entity.DefaultStatus
		lead.Status = &status

		key := strings.ToLower(strings.TrimSpace(email))
		if j, ok := byEmail[key]; ok {
			report.Duplicates++
			if lead.CreatedAt.After(leads[j].CreatedAt) {
				leads[j] = lead
			}
			continue
		}
		byEmail[key] = len(leads)
		leads = append(leads, lead)
	}
	return leads, report, nil
}

// parseDate accepts an Excel serial day number or a textual date. Anything
// else falls back to the current time.
func (im *Importer) parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return im.now().UTC()
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.UTC()
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	im.logger.Debug("unparseable date, using now", zap.String("value", raw))
	return im.now().UTC()
}

func mapHeader(header []string) []string {
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = headerAliases[strings.ToLower(strings.TrimSpace(h))]
	}
	return fields
}

// rowValues returns the first non-empty value per field.
func rowValues(fields []string, row []string) map[string]string {
	out := map[string]string{}
	for i, cell := range row {
		if i >= len(fields) || fields[i] == "" {
			continue
		}
		v := strings.TrimSpace(cell)
		if v != "" && out[fields[i]] == "" {
			out[fields[i]] = v
		}
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
