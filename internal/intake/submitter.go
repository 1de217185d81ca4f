// Package intake submits the public landing form to its two sinks: the lead
// service and the spreadsheet automation script.
package intake

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/infra/integration/sheets"
)

var ErrMissingFields = errors.New("name, phone and email are required")

type Form struct {
	Name      string
	Phone     string
	Email     string
	Clinic    string
	Revenue   string
	Challenge string
}

// LeadSink stores the lead in this system.
type LeadSink interface {
	CreateLead(ctx context.Context, fields map[string]string) (string, error)
}

// SheetSink posts the form to the spreadsheet automation.
type SheetSink interface {
	Submit(ctx context.Context, sub sheets.Submission) (sheets.Result, error)
}

// Outcome is what the visitor sees. It only reflects the spreadsheet
// submission; the lead service result is logged.
type Outcome struct {
	Delivered  bool
	StatusCode int
	Err        error
}

type Submitter struct {
	leads  LeadSink
	sheet  SheetSink
	logger *zap.Logger

	// OnComplete runs once the spreadsheet submission finishes, whatever
	// its result. The landing page uses it to start the playbook download.
	OnComplete func(ctx context.Context, out Outcome)
}

func NewSubmitter(leads LeadSink, sheet SheetSink, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{leads: leads, sheet: sheet, logger: logger}
}

// Submit sends the form to both sinks concurrently and waits for both.
// Neither sink's failure affects the other.
func (s *Submitter) Submit(ctx context.Context, form Form) (Outcome, error) {
	form = form.trimmed()
	if form.Name == "" || form.Phone == "" || form.Email == "" {
		return Outcome{}, ErrMissingFields
	}

	var (
		wg  sync.WaitGroup
		out Outcome
	)

	if s.leads != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.leads.CreateLead(ctx, form.leadFields())
			if err != nil {
				s.logger.Error("lead service submission failed",
					zap.String("email", form.Email),
					zap.Error(err),
				)
				return
			}
			s.logger.Info("lead stored", zap.String("lead_id", id))
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		out = s.submitSheet(ctx, form)
		if s.OnComplete != nil {
			s.OnComplete(ctx, out)
		}
	}()

	wg.Wait()
	return out, nil
}

func (s *Submitter) submitSheet(ctx context.Context, form Form) Outcome {
	if s.sheet == nil {
		return Outcome{Err: sheets.ErrNotConfigured}
	}

	res, err := s.sheet.Submit(ctx, form.submission())
	if err != nil {
		s.logger.Error("spreadsheet submission failed", zap.Error(err))
		return Outcome{Err: err}
	}
	return Outcome{Delivered: true, StatusCode: res.StatusCode}
}

func (f Form) trimmed() Form {
	return Form{
		Name:      strings.TrimSpace(f.Name),
		Phone:     strings.TrimSpace(f.Phone),
		Email:     strings.TrimSpace(f.Email),
		Clinic:    strings.TrimSpace(f.Clinic),
		Revenue:   strings.TrimSpace(f.Revenue),
		Challenge: strings.TrimSpace(f.Challenge),
	}
}

func (f Form) leadFields() map[string]string {
	fields := map[string]string{
		"name":  f.Name,
		"phone": f.Phone,
		"email": f.Email,
	}
	if f.Clinic != "" {
		fields["clinic"] = f.Clinic
	}
	if f.Revenue != "" {
		fields["revenue"] = f.Revenue
	}
	if f.Challenge != "" {
		fields["challenge"] = f.Challenge
	}
	return fields
}

// submission renames the fields to what the script expects.
func (f Form) submission() sheets.Submission {
	return sheets.Submission{
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		HasClinic: f.Clinic,
		Billing:   f.Revenue,
		MainBlock: f.Challenge,
	}
}
