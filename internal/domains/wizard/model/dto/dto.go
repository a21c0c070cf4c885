package dto

import (
	"veranda/internal/domains/pricing"
	"veranda/internal/domains/wizard/model"
)

type StartWizardRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type UpdateDraftRequest struct {
	CheckIn         string          `json:"check_in"         validate:"omitempty,datetime=2006-01-02"`
	CheckOut        string          `json:"check_out"        validate:"omitempty,datetime=2006-01-02"`
	GuestCount      *int            `json:"guest_count"      validate:"omitempty,min=1"`
	CustomerName    string          `json:"customer_name"    validate:"omitempty,max=100"`
	Email           string          `json:"email"            validate:"omitempty,email,max=100"`
	Phone           string          `json:"phone"            validate:"omitempty,max=20"`
	SpecialRequests string          `json:"special_requests" validate:"omitempty,max=2000"`
	Extras          *pricing.Extras `json:"extras"`
}

type SessionResponse struct {
	ID    string      `json:"id"`
	Step  int         `json:"step"`
	Draft model.Draft `json:"draft"`
}

func (r *SessionResponse) FromModel(session model.Session) {
	r.ID = session.ID
	r.Step = session.Step
	r.Draft = session.Draft
}
