package model

import (
	"time"

	"veranda/internal/domains/pricing"
)

const (
	EntityName = "wizard"

	StepRoomSelection = 1
	StepGuestDetails  = 2
	StepPayment       = 3
)

// RoomSnapshot freezes the fields of the selected room the wizard needs.
// Pricing at confirmation uses the snapshot so an admin edit mid-flow does
// not change what the guest was shown.
type RoomSnapshot struct {
	ID         string  `json:"id"`
	RoomNumber string  `json:"room_number"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Discount   float64 `json:"discount"`
	MaxGuests  int     `json:"max_guests"`
}

type Draft struct {
	Room            *RoomSnapshot  `json:"room,omitempty"`
	CheckIn         string         `json:"check_in,omitempty"`
	CheckOut        string         `json:"check_out,omitempty"`
	GuestCount      int            `json:"guest_count,omitempty"`
	CustomerName    string         `json:"customer_name,omitempty"`
	Email           string         `json:"email,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	SpecialRequests string         `json:"special_requests,omitempty"`
	Extras          pricing.Extras `json:"extras"`
}

type Session struct {
	ID        string    `json:"id"`
	Step      int       `json:"step"`
	Draft     Draft     `json:"draft"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomSelected reports whether step 1 has everything it needs.
func (s *Session) RoomSelected() bool {
	return s.Draft.Room != nil && s.Draft.CheckIn != "" && s.Draft.CheckOut != ""
}

// GuestDetailsComplete reports whether step 2 has everything it needs.
func (s *Session) GuestDetailsComplete() bool {
	return s.Draft.CustomerName != "" && s.Draft.Email != "" && s.Draft.Phone != ""
}
