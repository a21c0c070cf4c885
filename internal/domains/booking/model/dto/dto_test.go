package dto_test

import (
	"testing"
	"time"

	"veranda/internal/domains/booking/model"
	"veranda/internal/domains/booking/model/dto"
	"veranda/internal/domains/pricing"
	"veranda/shared/constant"
	gModel "veranda/shared/model"
	"veranda/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:          "room-1",
		CustomerName:    "Amelia Hart",
		Email:           "amelia.hart@example.com",
		Phone:           "+44 20 7946 0958",
		CheckIn:         "2025-05-10",
		CheckOut:        "2025-05-15",
		GuestCount:      2,
		SpecialRequests: "Late arrival",
		Extras:          pricing.Extras{Breakfast: true},
	}

	user := "guest"
	booking, err := req.ToModel(user)

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID, "expected a booking reference to be generated")
	assert.Regexp(t, `^BK\d{8}$`, booking.ID)
	assert.Equal(t, req.RoomID, booking.RoomID)
	assert.Equal(t, req.CustomerName, booking.CustomerName)
	assert.Equal(t, req.Email, booking.Email)
	assert.Equal(t, "2025-05-10", booking.CheckIn.Format(constant.StayDateFormat))
	assert.Equal(t, "2025-05-15", booking.CheckOut.Format(constant.StayDateFormat))
	assert.Equal(t, 2, booking.GuestCount)
	assert.Equal(t, model.StatusPending, booking.Status, "status defaults to pending")
	assert.Equal(t, user, booking.CreatedBy)
	assert.False(t, booking.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestCreateBookingRequest_ToModel_Defaults(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:       "room-1",
		CustomerName: "Amelia Hart",
		Email:        "amelia.hart@example.com",
		Phone:        "+44 20 7946 0958",
		CheckIn:      "2025-05-10",
		CheckOut:     "2025-05-11",
	}

	booking, err := req.ToModel("guest")

	assert.NoError(t, err)
	assert.Equal(t, 1, booking.GuestCount, "guest count defaults to 1")
	assert.Equal(t, model.StatusPending, booking.Status)
}

func TestCreateBookingRequest_ToModel_InvalidDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:       "room-1",
		CustomerName: "Amelia Hart",
		Email:        "amelia.hart@example.com",
		Phone:        "+44 20 7946 0958",
		CheckIn:      "10/05/2025",
		CheckOut:     "2025-05-15",
	}

	_, err := req.ToModel("guest")

	assert.Error(t, err)
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	booking := model.Booking{
		ID:           "BK12345678",
		RoomID:       "room-1",
		RoomNumber:   "204",
		CustomerName: "Amelia Hart",
		Email:        "amelia.hart@example.com",
		Phone:        "+44 20 7946 0958",
		CheckIn:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		TotalNights:  5,
		TotalAmount:  1495,
		GuestCount:   2,
		Status:       model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "guest",
			ModifiedBy: "guest",
		},
	}

	var response dto.BookingResponse
	response.FromModel(booking)

	assert.Equal(t, booking.ID, response.ID)
	assert.Equal(t, booking.RoomNumber, response.RoomNumber)
	assert.Equal(t, "2025-05-10", response.CheckIn)
	assert.Equal(t, "2025-05-15", response.CheckOut)
	assert.Equal(t, booking.TotalNights, response.TotalNights)
	assert.Equal(t, booking.TotalAmount, response.TotalAmount)
	assert.Equal(t, booking.Status, response.Status)
	assert.Equal(t, booking.CreatedBy, response.CreatedBy)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	bookings := []model.Booking{
		{ID: "BK00000001", RoomNumber: "204"},
		{ID: "BK00000002", RoomNumber: "310"},
	}

	totalData := 15
	limit := 10

	var response dto.GetBookingsResponse
	response.FromModels(bookings, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Bookings, len(bookings))

	for i, booking := range response.Bookings {
		assert.Equal(t, bookings[i].ID, booking.ID)
		assert.Equal(t, bookings[i].RoomNumber, booking.RoomNumber)
	}
}

func TestNewBookingEvent(t *testing.T) {
	booking := model.Booking{
		ID:          "BK12345678",
		RoomID:      "room-1",
		Email:       "amelia.hart@example.com",
		CheckIn:     time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount: 1495,
		Status:      model.StatusConfirmed,
	}

	event := dto.NewBookingEvent("booking.confirmed", booking)

	assert.Equal(t, "booking.confirmed", event.Event)
	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, "2025-05-10", event.CheckIn)
	assert.Equal(t, "2025-05-15", event.CheckOut)
	assert.Equal(t, booking.TotalAmount, event.TotalAmount)
	assert.NotEmpty(t, event.OccurredAt)
}
