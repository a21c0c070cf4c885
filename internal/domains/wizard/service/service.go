package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"veranda/config"
	"veranda/infras/otel"
	bookingModel "veranda/internal/domains/booking/model"
	bookingDto "veranda/internal/domains/booking/model/dto"
	bookingService "veranda/internal/domains/booking/service"
	roomModel "veranda/internal/domains/room/model"
	roomRepo "veranda/internal/domains/room/repository"
	"veranda/internal/domains/wizard/model"
	"veranda/internal/domains/wizard/model/dto"
	"veranda/shared"
	"veranda/shared/cache"
	"veranda/shared/constant"
	"veranda/shared/failure"
	"veranda/shared/timezone"
)

const cacheSession = "wizard:session"

type Wizard interface {
	Start(ctx context.Context, req dto.StartWizardRequest) (dto.SessionResponse, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
	UpdateDraft(ctx context.Context, req dto.UpdateDraftRequest, id string) (dto.SessionResponse, error)
	Next(ctx context.Context, id string) (dto.SessionResponse, error)
	Back(ctx context.Context, id string) (dto.SessionResponse, error)
	Confirm(ctx context.Context, id string) (bookingDto.BookingResponse, error)
	Abandon(ctx context.Context, id string) error
}

type serviceImpl struct {
	roomRepo   roomRepo.Room
	bookingSvc bookingService.Booking
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(roomRepo roomRepo.Room, bookingSvc bookingService.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Wizard {
	return &serviceImpl{
		roomRepo:   roomRepo,
		bookingSvc: bookingSvc,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Start(ctx context.Context, req dto.StartWizardRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking flow")

		return res, fmt.Errorf("failed to get room for booking flow: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.Status != roomModel.StatusAvailable {
		return res, failure.BadRequestFromString("room is not available") // nolint:wrapcheck
	}

	session := model.Session{
		ID:   uuid.NewString(),
		Step: model.StepRoomSelection,
		Draft: model.Draft{
			Room: &model.RoomSnapshot{
				ID:         room.ID,
				RoomNumber: room.RoomNumber,
				Type:       room.Type,
				Price:      room.Price,
				Discount:   room.Discount,
				MaxGuests:  room.MaxGuests,
			},
			GuestCount: 1,
		},
		CreatedAt: timezone.Now(),
	}

	if err = s.save(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) UpdateDraft(ctx context.Context, req dto.UpdateDraftRequest, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if req.CheckIn != "" {
		session.Draft.CheckIn = req.CheckIn

		// Picking a check-in without an explicit check-out books a single
		// night by default.
		if req.CheckOut == "" {
			checkIn, parseErr := time.Parse(constant.StayDateFormat, req.CheckIn)
			if parseErr == nil {
				session.Draft.CheckOut = checkIn.AddDate(0, 0, 1).Format(constant.StayDateFormat)
			}
		}
	}

	if req.CheckOut != "" {
		session.Draft.CheckOut = req.CheckOut
	}

	if req.GuestCount != nil {
		session.Draft.GuestCount = *req.GuestCount
	}

	if req.CustomerName != "" {
		session.Draft.CustomerName = req.CustomerName
	}

	if req.Email != "" {
		session.Draft.Email = req.Email
	}

	if req.Phone != "" {
		session.Draft.Phone = req.Phone
	}

	if req.SpecialRequests != "" {
		session.Draft.SpecialRequests = req.SpecialRequests
	}

	if req.Extras != nil {
		session.Draft.Extras = *req.Extras
	}

	if err = s.save(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Next(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Next")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	switch session.Step {
	case model.StepRoomSelection:
		if !session.RoomSelected() {
			return res, failure.BadRequestFromString("select a room and stay dates to continue") // nolint:wrapcheck
		}
	case model.StepGuestDetails:
		if !session.GuestDetailsComplete() {
			return res, failure.BadRequestFromString("complete guest details to continue") // nolint:wrapcheck
		}
	default:
		return res, failure.BadRequestFromString("already at the final step") // nolint:wrapcheck
	}

	session.Step++

	if err = s.save(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Back(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Back")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	// Going back is never guarded and keeps the accumulated draft.
	if session.Step > model.StepRoomSelection {
		session.Step--

		if err = s.save(ctx, session); err != nil {
			return res, err
		}
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if session.Step != model.StepPayment {
		return res, failure.BadRequestFromString("booking flow is not at the confirmation step") // nolint:wrapcheck
	}

	// Re-validated here even though earlier guards should have caught it.
	if !session.RoomSelected() {
		return res, failure.BadRequestFromString("select a room and stay dates to continue") // nolint:wrapcheck
	}

	if !session.GuestDetailsComplete() {
		return res, failure.BadRequestFromString("complete guest details to continue") // nolint:wrapcheck
	}

	res, err = s.bookingSvc.Create(ctx, bookingDto.CreateBookingRequest{
		RoomID:          session.Draft.Room.ID,
		CustomerName:    session.Draft.CustomerName,
		Email:           session.Draft.Email,
		Phone:           session.Draft.Phone,
		CheckIn:         session.Draft.CheckIn,
		CheckOut:        session.Draft.CheckOut,
		GuestCount:      session.Draft.GuestCount,
		SpecialRequests: session.Draft.SpecialRequests,
		Extras:          session.Draft.Extras,
		Status:          bookingModel.StatusConfirmed,
	})
	if err != nil {
		return res, err
	}

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(cacheSession, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking flow session")
	}

	return res, nil
}

func (s *serviceImpl) Abandon(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Abandon")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(cacheSession, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking flow session")

		return fmt.Errorf("failed to delete booking flow session: %w", err)
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (session model.Session, err error) {
	err = s.cache.Get(ctx, shared.BuildCacheKey(cacheSession, id), &session)
	if err != nil {
		// Only an absent key is a missing session; anything else is the
		// session store failing and must not read as a 404.
		if errors.Is(err, cache.Nil) {
			return session, failure.NotFound("booking session not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("id", id).Msg("failed to load booking flow session")

		return session, fmt.Errorf("failed to load booking flow session: %w", err)
	}

	return session, nil
}

func (s *serviceImpl) save(ctx context.Context, session model.Session) error {
	key := shared.BuildCacheKey(cacheSession, session.ID)

	if err := s.cache.Save(ctx, key, session, s.cfg.Wizard.SessionTTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to save booking flow session")

		return fmt.Errorf("failed to save booking flow session: %w", err)
	}

	return nil
}
