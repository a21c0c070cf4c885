package model

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"

	"veranda/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldRoomNumber      = "room_number"
	FieldCustomerName    = "customer_name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldTotalNights     = "total_nights"
	FieldTotalAmount     = "total_amount"
	FieldGuestCount      = "guest_count"
	FieldSpecialRequests = "special_requests"
	FieldStatus          = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID              string    `db:"id"`
	RoomID          string    `db:"room_id"`
	RoomNumber      string    `db:"room_number"`
	CustomerName    string    `db:"customer_name"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	CheckIn         time.Time `db:"check_in"`
	CheckOut        time.Time `db:"check_out"`
	TotalNights     int       `db:"total_nights"`
	TotalAmount     float64   `db:"total_amount"`
	GuestCount      int       `db:"guest_count"`
	SpecialRequests string    `db:"special_requests"`
	Status          string    `db:"status"`
	model.Metadata
}

// NewID produces booking references like BK48291057: a stable customer-facing
// shape derived from a fresh uuid.
func NewID() string {
	u := uuid.New()

	return fmt.Sprintf("BK%08d", binary.BigEndian.Uint32(u[:4])%100000000)
}
