package entity

const (
	StatusLead          = "LEAD"
	StatusContacted     = "CONTACTADO"
	StatusVideoCall     = "VIDEOLLAMADA"
	StatusWhatsApp      = "CONVERSACIÓN WHATSAPP"
	StatusInterested    = "INTERESADO"
	StatusWarm          = "TEMPLADO"
	StatusCold          = "FRÍO"
	StatusBooked        = "RESERVA"
	StatusConverted     = "CONVERTIDO"
	StatusNotInterested = "NO INTERESA"

	DefaultStatus = StatusLead
)

// taxonomy is the pipeline order. The first entry is the default.
var taxonomy = []string{
	StatusLead,
	StatusContacted,
	StatusVideoCall,
	StatusWhatsApp,
	StatusInterested,
	StatusWarm,
	StatusCold,
	StatusBooked,
	StatusConverted,
	StatusNotInterested,
}

var hiddenStatuses = map[string]bool{
	StatusNotInterested: true,
}

var statusColors = map[string]string{
	StatusLead:          "#3b82f6",
	StatusContacted:     "#8b5cf6",
	StatusVideoCall:     "#ec4899",
	StatusWhatsApp:      "#10b981",
	StatusInterested:    "#f59e0b",
	StatusWarm:          "#6366f1",
	StatusCold:          "#6b7280",
	StatusBooked:        "#ef4444",
	StatusConverted:     "#16a34a",
	StatusNotInterested: "#dc2626",
}

const fallbackColor = "#e5e7eb"

// Statuses returns a copy of the full ordered taxonomy.
func Statuses() []string {
	out := make([]string, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// BoardStatuses returns the taxonomy without the hidden subset, in order.
func BoardStatuses() []string {
	out := make([]string, 0, len(taxonomy))
	for _, s := range taxonomy {
		if !hiddenStatuses[s] {
			out = append(out, s)
		}
	}
	return out
}

// HiddenStatuses returns the hidden subset in taxonomy order.
func HiddenStatuses() []string {
	var out []string
	for _, s := range taxonomy {
		if hiddenStatuses[s] {
			out = append(out, s)
		}
	}
	return out
}

func IsValidStatus(status string) bool {
	for _, s := range taxonomy {
		if s == status {
			return true
		}
	}
	return false
}

func IsHiddenStatus(status string) bool {
	return hiddenStatuses[status]
}

func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fallbackColor
}
