package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"veranda/internal/domains/pricing"
	"veranda/internal/domains/room/model"
	"veranda/shared"
	gDto "veranda/shared/dto"
	gModel "veranda/shared/model"
	"veranda/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber  string                `json:"room_number" validate:"required,max=20"`
	Type        string                `json:"type"        validate:"required,oneof=Standard Deluxe Suite Executive Presidential"`
	Price       float64               `json:"price"       validate:"required,min=0"`
	MaxGuests   int                   `json:"max_guests"  validate:"required,min=1"`
	Description string                `json:"description" validate:"omitempty,max=2000"`
	Discount    float64               `json:"discount"    validate:"omitempty,min=0,max=100"`
	Features    []string              `json:"features"    validate:"omitempty,dive,max=50"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	return model.Room{
		ID:          uuid.NewString(),
		RoomNumber:  c.RoomNumber,
		Type:        c.Type,
		Price:       c.Price,
		MaxGuests:   c.MaxGuests,
		Description: c.Description,
		Image:       imageURL,
		Discount:    c.Discount,
		Status:      model.StatusAvailable,
		Features:    pq.StringArray(c.Features),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber  string   `db:"room_number" json:"room_number" validate:"omitempty,max=20"`
	Type        string   `db:"type"        json:"type"        validate:"omitempty,oneof=Standard Deluxe Suite Executive Presidential"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,min=0"`
	MaxGuests   *int     `db:"max_guests"  json:"max_guests"  validate:"omitempty,min=1"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	Discount    *float64 `db:"discount"    json:"discount"    validate:"omitempty,min=0,max=100"`
	// Typed as pq.StringArray so the partial-update field map hands the
	// driver a value it can bind.
	Features  pq.StringArray        `db:"features" json:"features" validate:"omitempty,dive,max=50"`
	Image     *multipart.FileHeader `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	RoomNumber  string   `json:"room_number"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	DisplayRate float64  `json:"display_rate"`
	MaxGuests   int      `json:"max_guests"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Discount    float64  `json:"discount"`
	Status      string   `json:"status"`
	Features    []string `json:"features"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Type = model.Type
	r.Price = model.Price
	r.DisplayRate = pricing.DisplayRate(model.Price, model.Discount)
	r.MaxGuests = model.MaxGuests
	r.Description = model.Description
	r.Image = model.Image
	r.Discount = model.Discount
	r.Status = model.Status
	r.Features = model.Features
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
