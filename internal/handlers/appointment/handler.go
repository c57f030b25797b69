package appointment

import (
	"net/http"
	"visaprep/infras/otel"
	"visaprep/internal/domains/appointment/model/dto"
	"visaprep/internal/domains/appointment/service"
	"visaprep/shared/constant"
	gDto "visaprep/shared/dto"
	"visaprep/shared/failure"
	"visaprep/shared/validator"
	"visaprep/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RequestAppointment)
		routerGroup.Get("/mine", handler.GetMyAppointments)
		routerGroup.Get("/{id}", handler.GetAppointment)
		routerGroup.Post("/{id}/propose", handler.Propose)
		routerGroup.Post("/{id}/counter-propose", handler.CounterPropose)
		routerGroup.Post("/{id}/accept", handler.Accept)
		routerGroup.Post("/{id}/reject", handler.Reject)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
		routerGroup.Post("/{id}/waiting-room", handler.EnterWaitingRoom)
		routerGroup.Post("/{id}/start", handler.Start)
		routerGroup.Post("/{id}/end", handler.End)
		routerGroup.Get("/{id}/presence", handler.GetPresence)
	})
}

// RequestAppointment admits a new simulation request for the caller.
// @Summary Request a simulation appointment
// @Description Create a new mock-interview request; quota is checked before the appointment is created.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.RequestAppointmentRequest true "Request Appointment"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment requested"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error "Quota exhausted"
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) RequestAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestAppointment")
	defer scope.End()

	req := dto.RequestAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	appointment, err := handler.service.Request(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment requested by user " + user)

	response.WithJSON(w, http.StatusCreated, appointment)
}

// Propose sets a tentative date/time for a requested appointment.
// @Summary Propose a date/time
// @Description Advisor proposes (or re-proposes) a date and time for the appointment.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.ProposeRequest true "Proposal"
// @Success 200 {object} response.Message "Proposal recorded"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Concurrent modification"
// @Failure 422 {object} response.Error "Invalid state"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/propose [post]
// @Security BearerAuth
func (handler *Handler) Propose(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Propose")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ProposeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Propose(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to propose appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Proposal recorded")

	response.WithMessage(w, http.StatusOK, "Proposal recorded")
}

// CounterPropose overwrites the live proposal with an alternate date/time.
// @Summary Counter-propose a date/time
// @Description Either participant counters the current proposal; negotiation rounds are unbounded.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.ProposeRequest true "Counter-proposal"
// @Success 200 {object} response.Message "Counter-proposal recorded"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Concurrent modification"
// @Failure 422 {object} response.Error "Invalid state"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/counter-propose [post]
// @Security BearerAuth
func (handler *Handler) CounterPropose(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CounterPropose")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ProposeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CounterPropose(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to counter-propose appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Counter-proposal recorded")

	response.WithMessage(w, http.StatusOK, "Counter-proposal recorded")
}

// Accept confirms the live proposed date/time.
// @Summary Accept the current proposal
// @Description Confirms the appointment on the currently proposed values; takes no body so stale values can never be confirmed.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment confirmed"
// @Failure 409 {object} response.Error "Concurrent modification"
// @Failure 422 {object} response.Error "Invalid state"
// @Failure 503 {object} response.Error "Room creation failed"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/accept [post]
// @Security BearerAuth
func (handler *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Accept")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Accept(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment confirmed")

	response.WithMessage(w, http.StatusOK, "Appointment confirmed")
}

// Reject declines a requested or proposed appointment.
// @Summary Reject the appointment
// @Description Terminates negotiation with no quota penalty.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Message "Appointment rejected"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "Invalid state"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reject")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reject(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment rejected")

	response.WithMessage(w, http.StatusOK, "Appointment rejected")
}

// Cancel applies the cancellation window policy to a confirmed appointment.
// @Summary Cancel a confirmed appointment
// @Description Blocked under 24 hours; penalized between 24 and 72 hours; free beyond.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment cancelled"
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "Window closed or invalid state"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment cancelled")

	response.WithMessage(w, http.StatusOK, "Appointment cancelled")
}

// EnterWaitingRoom announces the caller's presence for the session.
// @Summary Enter the waiting room
// @Description Records per-participant presence; the first entry moves the appointment to waiting_room. Idempotent.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Presence recorded"
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "Invalid state"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/waiting-room [post]
// @Security BearerAuth
func (handler *Handler) EnterWaitingRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EnterWaitingRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.EnterWaitingRoom(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to enter waiting room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Presence recorded")

	response.WithMessage(w, http.StatusOK, "Presence recorded")
}

// Start begins the live session.
// @Summary Start the session
// @Description Advisor-only; moves the appointment to in_progress and activates the room handle.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Session started"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "Invalid state"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/start [post]
// @Security BearerAuth
func (handler *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Start")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Start(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session started")

	response.WithMessage(w, http.StatusOK, "Session started")
}

// End completes the live session and consumes a quota slot.
// @Summary End the session
// @Description Advisor-only; only valid from in_progress. Duration is computed from the start time when omitted.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.EndSessionRequest true "End session"
// @Success 200 {object} response.Message "Session completed"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "Invalid state"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/end [post]
// @Security BearerAuth
func (handler *Handler) End(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".End")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.EndSessionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.End(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to end session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session completed")

	response.WithMessage(w, http.StatusOK, "Session completed")
}

// GetAppointment retrieves one appointment.
// @Summary Get an appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment retrieved")

	response.WithJSON(w, http.StatusOK, appointment)
}

// GetMyAppointments lists the caller's appointments by role.
// @Summary List my appointments
// @Description Clients see appointments they requested; advisors see appointments assigned to them.
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	var (
		appointments dto.GetAppointmentsResponse
		err          error
	)

	if role == constant.RoleAdvisor {
		appointments, err = handler.service.ListForAdvisor(ctx, userID, queryParams)
	} else {
		appointments, err = handler.service.ListForClient(ctx, userID, queryParams)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved for user " + userID)

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetPresence serves the polled waiting-room projection.
// @Summary Get waiting-room presence
// @Description Stateless read intended for ~5 second polling; served from a short-TTL cache.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.PresenceResponse] "Presence projection"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/presence [get]
// @Security BearerAuth
func (handler *Handler) GetPresence(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPresence")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	presence, err := handler.service.GetPresence(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get presence")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, presence)
}
