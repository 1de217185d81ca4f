package mail

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

const (
	onboardingSubject  = "Playbook 50K: aquí tienes todo lo que necesitas"
	defaultWhatsAppURL = "https://chat.whatsapp.com/I9IHMDjHwd2Le0tIqJvweb"
	defaultPlaybookURL = "https://playbook50k.fisioreferentes.com"
)

var ErrNotConfigured = errors.New("mail host is not configured")

//go:embed templates/*
var templateFS embed.FS

var (
	onboardingHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/onboarding.html"))
	onboardingText = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/onboarding.txt"))
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:        host,
		Port:        port,
		User:        user,
		Password:    password,
		From:        from,
		PlaybookURL: defaultPlaybookURL,
		WhatsAppURL: defaultWhatsAppURL,
	}
	if host != "" {
		s.dialer = gomail.NewDialer(host, port, user, password)
	}
	return s
}

// RenderOnboarding returns the HTML and plain-text bodies. The greeting
// omits the name when it is empty.
func (s *EmailSender) RenderOnboarding(name string) (string, string, error) {
	data := OnboardingEmailData{
		Name:        name,
		PlaybookURL: s.PlaybookURL,
		WhatsAppURL: s.WhatsAppURL,
	}

	var html, text bytes.Buffer
	if err := onboardingHTML.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("render html template: %w", err)
	}
	if err := onboardingText.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("render text template: %w", err)
	}
	return html.String(), text.String(), nil
}

func (s *EmailSender) SendOnboarding(to, name string) error {
	if s.dialer == nil {
		return ErrNotConfigured
	}

	html, text, err := s.RenderOnboarding(name)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", onboardingSubject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send smtp: %w", err)
	}
	return nil
}

// Notifier sends the onboarding email inline. It is used when no queue is
// configured.
type Notifier struct {
	Sender *EmailSender
}

func (n Notifier) NotifyLeadCreated(_ context.Context, lead entity.Lead) error {
	return n.Sender.SendOnboarding(lead.Email, lead.Name)
}
