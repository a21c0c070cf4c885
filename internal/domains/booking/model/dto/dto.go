package dto

import (
	"time"

	"veranda/internal/domains/booking/model"
	"veranda/internal/domains/pricing"
	"veranda/shared"
	"veranda/shared/constant"
	gDto "veranda/shared/dto"
	gModel "veranda/shared/model"
	"veranda/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID          string         `json:"room_id"          validate:"required"`
	CustomerName    string         `json:"customer_name"    validate:"required,max=100"`
	Email           string         `json:"email"            validate:"required,email,max=100"`
	Phone           string         `json:"phone"            validate:"required,max=20"`
	CheckIn         string         `json:"check_in"         validate:"required"`
	CheckOut        string         `json:"check_out"        validate:"required"`
	GuestCount      int            `json:"guest_count"      validate:"omitempty,min=1"`
	SpecialRequests string         `json:"special_requests" validate:"omitempty,max=2000"`
	Extras          pricing.Extras `json:"extras"`
	Status          string         `json:"status"           validate:"omitempty,oneof=pending confirmed"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.StayDateFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := time.Parse(constant.StayDateFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	guestCount := c.GuestCount
	if guestCount == 0 {
		guestCount = 1
	}

	return model.Booking{
		ID:              model.NewID(),
		RoomID:          c.RoomID,
		CustomerName:    c.CustomerName,
		Email:           c.Email,
		Phone:           c.Phone,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestCount:      guestCount,
		SpecialRequests: c.SpecialRequests,
		Status:          status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BookingResponse struct {
	ID              string  `json:"id"`
	RoomID          string  `json:"room_id"`
	RoomNumber      string  `json:"room_number"`
	CustomerName    string  `json:"customer_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	TotalNights     int     `json:"total_nights"`
	TotalAmount     float64 `json:"total_amount"`
	GuestCount      int     `json:"guest_count"`
	SpecialRequests string  `json:"special_requests"`
	Status          string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.CustomerName = model.CustomerName
	r.Email = model.Email
	r.Phone = model.Phone
	r.CheckIn = model.CheckIn.Format(constant.StayDateFormat)
	r.CheckOut = model.CheckOut.Format(constant.StayDateFormat)
	r.TotalNights = model.TotalNights
	r.TotalAmount = model.TotalAmount
	r.GuestCount = model.GuestCount
	r.SpecialRequests = model.SpecialRequests
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to the booking events topic.
type BookingEvent struct {
	Event       string  `json:"event"`
	BookingID   string  `json:"booking_id"`
	RoomID      string  `json:"room_id"`
	Email       string  `json:"email"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	OccurredAt  string  `json:"occurred_at"`
}

func NewBookingEvent(event string, booking model.Booking) BookingEvent {
	return BookingEvent{
		Event:       event,
		BookingID:   booking.ID,
		RoomID:      booking.RoomID,
		Email:       booking.Email,
		CheckIn:     booking.CheckIn.Format(constant.StayDateFormat),
		CheckOut:    booking.CheckOut.Format(constant.StayDateFormat),
		TotalAmount: booking.TotalAmount,
		Status:      booking.Status,
		OccurredAt:  timezone.Now().Format(constant.DateFormat),
	}
}
