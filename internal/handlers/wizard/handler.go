package wizard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"

	"veranda/infras/otel"
	"veranda/internal/domains/wizard/model/dto"
	"veranda/internal/domains/wizard/service"
	"veranda/shared/constant"
	"veranda/shared/validator"
	"veranda/transport/http/response"
)

type Handler struct {
	service service.Wizard
	otel    otel.Otel
}

func New(service service.Wizard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/wizard", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartWizard)
		routerGroup.Get("/{id}", handler.GetSession)
		routerGroup.Patch("/{id}", handler.UpdateDraft)
		routerGroup.Post("/{id}/next", handler.NextStep)
		routerGroup.Post("/{id}/back", handler.PreviousStep)
		routerGroup.Post("/{id}/confirm", handler.ConfirmBooking)
		routerGroup.Delete("/{id}", handler.AbandonSession)
	})
}

// StartWizard opens a new booking session for a room.
// @Summary Start a booking session
// @Description Open a new step-by-step booking session for an available room.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body dto.StartWizardRequest true "Start Wizard Request"
// @Success 201 {object} response.Data[dto.SessionResponse] "Session started"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard [post]
func (handler *Handler) StartWizard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartWizard")
	defer scope.End()

	req := dto.StartWizardRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	session, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start booking session")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking session started: " + session.ID)

	response.WithJSON(writer, http.StatusCreated, session)
}

// GetSession retrieves a booking session by its ID.
// @Summary Get a booking session
// @Description Retrieve the current step and draft of a booking session.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Session details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/{id} [get]
func (handler *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking session retrieved successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// UpdateDraft merges partial booking details into the session draft.
// @Summary Update a session draft
// @Description Merge stay dates, guest details, or extras into the session draft. Fields left out are kept.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateDraftRequest true "Update Draft Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Updated session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/{id} [patch]
func (handler *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDraft")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDraftRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.UpdateDraft(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update session draft")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session draft updated successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// NextStep advances the session to the next step.
// @Summary Advance a booking session
// @Description Advance the session to the next step. The current step must be complete.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Advanced session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/{id}/next [post]
func (handler *Handler) NextStep(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".NextStep")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.Next(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to advance booking session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking session advanced successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// PreviousStep moves the session back one step.
// @Summary Move a booking session back
// @Description Move the session back one step. The draft is kept.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Session"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/{id}/back [post]
func (handler *Handler) PreviousStep(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PreviousStep")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.Back(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to move booking session back")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking session moved back successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// ConfirmBooking finalizes the session into a confirmed booking.
// @Summary Confirm a booking session
// @Description Turn a completed session into a confirmed booking and close the session.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} response.Data[bookingDto.BookingResponse] "Confirmed booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/{id}/confirm [post]
func (handler *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Confirm(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking session confirmed: " + booking.ID)

	response.WithJSON(w, http.StatusCreated, booking)
}

// AbandonSession discards a booking session.
// @Summary Abandon a booking session
// @Description Discard a booking session and its draft.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Message "Session abandoned"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/{id} [delete]
func (handler *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AbandonSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Abandon(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to abandon booking session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking session abandoned: " + id)

	response.WithMessage(w, http.StatusOK, "Session abandoned successfully")
}
