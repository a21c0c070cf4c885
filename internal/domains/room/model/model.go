package model

import (
	"github.com/lib/pq"

	"veranda/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldType        = "type"
	FieldPrice       = "price"
	FieldMaxGuests   = "max_guests"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldDiscount    = "discount"
	FieldStatus      = "status"
	FieldFeatures    = "features"
)

const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
)

const (
	TypeStandard     = "Standard"
	TypeDeluxe       = "Deluxe"
	TypeSuite        = "Suite"
	TypeExecutive    = "Executive"
	TypePresidential = "Presidential"
)

type Room struct {
	ID          string         `db:"id"`
	RoomNumber  string         `db:"room_number"`
	Type        string         `db:"type"`
	Price       float64        `db:"price"`
	MaxGuests   int            `db:"max_guests"`
	Description string         `db:"description"`
	Image       string         `db:"image"`
	Discount    float64        `db:"discount"`
	Status      string         `db:"status"`
	Features    pq.StringArray `db:"features"`
	model.Metadata
}
