package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"veranda/config"
	"veranda/infras/otel/mocks"
	bookingDto "veranda/internal/domains/booking/model/dto"
	bookingServiceMocks "veranda/internal/domains/booking/service/mocks"
	roomMocks "veranda/internal/domains/room/mocks"
	roomModel "veranda/internal/domains/room/model"
	"veranda/internal/domains/wizard/model"
	"veranda/internal/domains/wizard/model/dto"
	"veranda/internal/domains/wizard/service"
	"veranda/shared/cache"
	cacheMocks "veranda/shared/cache/mocks"
	"veranda/shared/failure"
)

// sessionStore backs the cache mock with a real map so a whole booking flow
// can run through the state machine in one test.
type sessionStore struct {
	data map[string][]byte
}

func newWizardService(t *testing.T) (service.Wizard, *roomMocks.MockRoom, *bookingServiceMocks.MockBooking, *sessionStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingSvc := bookingServiceMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	store := &sessionStore{data: map[string][]byte{}}

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
			raw, err := json.Marshal(value)
			if err != nil {
				return err
			}

			store.data[key] = raw

			return nil
		}).
		AnyTimes()

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any) error {
			raw, ok := store.data[key]
			if !ok {
				return fmt.Errorf("failed to get cache value: %w", cache.Nil)
			}

			return json.Unmarshal(raw, value)
		}).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			delete(store.data, key)

			return nil
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Wizard.SessionTTLSeconds = 1800

	svc := service.New(mockRoomRepo, mockBookingSvc, cfg, mockCache, mockOtel)

	return svc, mockRoomRepo, mockBookingSvc, store
}

func standardRoom() roomModel.Room {
	return roomModel.Room{
		ID:         "room-id-1",
		RoomNumber: "101",
		Type:       roomModel.TypeStandard,
		Price:      199,
		MaxGuests:  2,
		Status:     roomModel.StatusAvailable,
	}
}

func TestWizardService_Start(t *testing.T) {
	t.Run("opens at step one with the room preselected", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})

		assert.NoError(t, err)
		assert.Equal(t, model.StepRoomSelection, session.Step)
		assert.Equal(t, "room-id-1", session.Draft.Room.ID)
		assert.InDelta(t, 199, session.Draft.Room.Price, 0.001)
	})

	t.Run("room not found", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "nonexistent"})

		assert.Error(t, err)
	})

	t.Run("reserved room cannot open a flow", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		reserved := standardRoom()
		reserved.Status = roomModel.StatusReserved

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(reserved, nil)

		_, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})

		assert.Error(t, err)
	})
}

func TestWizardService_StepGuards(t *testing.T) {
	t.Run("cannot advance without dates", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
		assert.NoError(t, err)

		_, err = svc.Next(context.Background(), session.ID)
		assert.Error(t, err)

		// A failed guard leaves the step unchanged.
		current, err := svc.Get(context.Background(), session.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.StepRoomSelection, current.Step)
	})

	t.Run("cannot reach payment without guest details", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
		assert.NoError(t, err)

		_, err = svc.UpdateDraft(context.Background(), dto.UpdateDraftRequest{
			CheckIn:  "2025-06-01",
			CheckOut: "2025-06-04",
		}, session.ID)
		assert.NoError(t, err)

		current, err := svc.Next(context.Background(), session.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.StepGuestDetails, current.Step)

		_, err = svc.Next(context.Background(), session.ID)
		assert.Error(t, err)
	})

	t.Run("back is never guarded and keeps the draft", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
		assert.NoError(t, err)

		_, err = svc.UpdateDraft(context.Background(), dto.UpdateDraftRequest{
			CheckIn:  "2025-06-01",
			CheckOut: "2025-06-04",
		}, session.ID)
		assert.NoError(t, err)

		_, err = svc.Next(context.Background(), session.ID)
		assert.NoError(t, err)

		current, err := svc.Back(context.Background(), session.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.StepRoomSelection, current.Step)
		assert.Equal(t, "2025-06-01", current.Draft.CheckIn)
	})
}

func TestWizardService_DateDefaulting(t *testing.T) {
	svc, mockRoomRepo, _, _ := newWizardService(t)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(standardRoom(), nil)

	session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
	assert.NoError(t, err)

	current, err := svc.UpdateDraft(context.Background(), dto.UpdateDraftRequest{CheckIn: "2025-06-01"}, session.ID)

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-01", current.Draft.CheckIn)
	assert.Equal(t, "2025-06-02", current.Draft.CheckOut)
}

func TestWizardService_Confirm(t *testing.T) {
	guestDetails := dto.UpdateDraftRequest{
		CustomerName: "Jordan Blake",
		Email:        "jordan@example.com",
		Phone:        "+12025550147",
	}

	t.Run("full flow produces a confirmed booking and clears the session", func(t *testing.T) {
		svc, mockRoomRepo, mockBookingSvc, store := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
		assert.NoError(t, err)

		_, err = svc.UpdateDraft(context.Background(), dto.UpdateDraftRequest{
			CheckIn:  "2025-06-01",
			CheckOut: "2025-06-04",
		}, session.ID)
		assert.NoError(t, err)

		_, err = svc.Next(context.Background(), session.ID)
		assert.NoError(t, err)

		_, err = svc.UpdateDraft(context.Background(), guestDetails, session.ID)
		assert.NoError(t, err)

		current, err := svc.Next(context.Background(), session.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.StepPayment, current.Step)

		mockBookingSvc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error) {
				assert.Equal(t, "room-id-1", req.RoomID)
				assert.Equal(t, "2025-06-01", req.CheckIn)
				assert.Equal(t, "2025-06-04", req.CheckOut)
				assert.Equal(t, "confirmed", req.Status)

				return bookingDto.BookingResponse{
					ID:          "BK12345678",
					RoomID:      req.RoomID,
					TotalNights: 3,
					Status:      "confirmed",
				}, nil
			})

		booking, err := svc.Confirm(context.Background(), session.ID)

		assert.NoError(t, err)
		assert.Equal(t, 3, booking.TotalNights)
		assert.Empty(t, store.data)

		_, err = svc.Get(context.Background(), session.ID)
		assert.Error(t, err)
	})

	t.Run("confirm refused before the payment step", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
		assert.NoError(t, err)

		_, err = svc.Confirm(context.Background(), session.ID)

		assert.Error(t, err)
	})

	t.Run("session survives a failed confirmation", func(t *testing.T) {
		svc, mockRoomRepo, mockBookingSvc, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(standardRoom(), nil)

		session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
		assert.NoError(t, err)

		_, err = svc.UpdateDraft(context.Background(), dto.UpdateDraftRequest{
			CheckIn:  "2025-06-01",
			CheckOut: "2025-06-04",
		}, session.ID)
		assert.NoError(t, err)

		_, err = svc.Next(context.Background(), session.ID)
		assert.NoError(t, err)

		_, err = svc.UpdateDraft(context.Background(), guestDetails, session.ID)
		assert.NoError(t, err)

		_, err = svc.Next(context.Background(), session.ID)
		assert.NoError(t, err)

		mockBookingSvc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(bookingDto.BookingResponse{}, errors.New("database error"))

		_, err = svc.Confirm(context.Background(), session.ID)
		assert.Error(t, err)

		current, err := svc.Get(context.Background(), session.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.StepPayment, current.Step)
	})
}

func TestWizardService_Get_SessionStoreErrors(t *testing.T) {
	t.Run("missing session reads as not found", func(t *testing.T) {
		svc, _, _, _ := newWizardService(t)

		_, err := svc.Get(context.Background(), "nonexistent-session")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("store outage does not read as not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		mockRoomRepo := roomMocks.NewMockRoom(ctrl)
		mockBookingSvc := bookingServiceMocks.NewMockBooking(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		mockOtel := mocks.NewOtel()

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("connection refused"))

		cfg := &config.Config{}
		cfg.Wizard.SessionTTLSeconds = 1800

		svc := service.New(mockRoomRepo, mockBookingSvc, cfg, mockCache, mockOtel)

		_, err := svc.Get(context.Background(), "session-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestWizardService_Abandon(t *testing.T) {
	svc, mockRoomRepo, _, store := newWizardService(t)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(standardRoom(), nil)

	session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-id-1"})
	assert.NoError(t, err)
	assert.Len(t, store.data, 1)

	err = svc.Abandon(context.Background(), session.ID)

	assert.NoError(t, err)
	assert.Empty(t, store.data)
}
