package sheets

// Submission carries the form fields under the parameter names the
// spreadsheet script expects.
type Submission struct {
	Name      string
	Email     string
	Phone     string
	HasClinic string
	Billing   string
	MainBlock string
}

// Result is the transport outcome. The script's response body is opaque.
type Result struct {
	StatusCode int
}
