package mail

type OnboardingEmailData struct {
	Name        string
	PlaybookURL string
	WhatsAppURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	PlaybookURL string
	WhatsAppURL string

	dialer dialer
}
