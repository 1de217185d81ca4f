package usecase

import "github.com/xavierca1/playbook-leads/internal/entity"

type CreateLeadInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Clinic    string `json:"clinic"`
	Revenue   string `json:"revenue"`
	Challenge string `json:"challenge"`
}

type CreateLeadOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type UpdateLeadInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (in UpdateLeadInput) Patch() entity.LeadPatch {
	return entity.LeadPatch{Status: in.Status, Notes: in.Notes}
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token string
}
