package service

import (
	"context"
	"errors"
	"fmt"
	"visaprep/config"
	"visaprep/infras/conference"
	"visaprep/infras/kafka"
	"visaprep/infras/otel"
	"visaprep/infras/registry"
	"visaprep/internal/domains/appointment/model"
	"visaprep/internal/domains/appointment/model/dto"
	"visaprep/internal/domains/appointment/policy"
	"visaprep/internal/domains/appointment/repository"
	quotaSvc "visaprep/internal/domains/quota/service"
	"visaprep/shared"
	"visaprep/shared/cache"
	"visaprep/shared/constant"
	gDto "visaprep/shared/dto"
	"visaprep/shared/failure"
	"visaprep/shared/logger"
	"visaprep/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
	cachePresence          = "appointment:presence"
)

const (
	msgInvalidStateTransition   = "invalid state transition"
	msgStaleProposal            = "appointment was modified concurrently, re-fetch and retry"
	msgTerminalAppointment      = "appointment is already completed or cancelled"
	msgCancellationWindowClosed = "cancellation window closed"
	msgRoomCreationFailed       = "virtual room could not be created, try again"
	msgAdvisorOnly              = "only the assigned advisor may perform this action"
	msgNotParticipant           = "you are not a participant of this appointment"
)

const (
	eventRequested       = "appointment.requested"
	eventProposed        = "appointment.proposed"
	eventCounterProposed = "appointment.counter_proposed"
	eventConfirmed       = "appointment.confirmed"
	eventCancelled       = "appointment.cancelled"
	eventWaitingRoom     = "appointment.waiting_room"
	eventStarted         = "appointment.started"
	eventCompleted       = "appointment.completed"
)

// Appointment drives the full lifecycle of a simulation appointment, from
// the request/propose/accept negotiation through the live session and its
// terminal states. All mutations are serialized per appointment through an
// optimistic version check.
type Appointment interface {
	Request(ctx context.Context, req dto.RequestAppointmentRequest) (dto.AppointmentResponse, error)
	Propose(ctx context.Context, id string, req dto.ProposeRequest) error
	CounterPropose(ctx context.Context, id string, req dto.ProposeRequest) error
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string, req dto.RejectRequest) error
	Cancel(ctx context.Context, id string) error
	EnterWaitingRoom(ctx context.Context, id string) error
	Start(ctx context.Context, id string) error
	End(ctx context.Context, id string, req dto.EndSessionRequest) error
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	ListForClient(ctx context.Context, clientID string, params gDto.QueryParams) (dto.GetAppointmentsResponse, error)
	ListForAdvisor(ctx context.Context, advisorID string, params gDto.QueryParams) (dto.GetAppointmentsResponse, error)
	GetPresence(ctx context.Context, id string) (dto.PresenceResponse, error)
}

type serviceImpl struct {
	repo       repository.Appointment
	quota      quotaSvc.Quota
	conference conference.Client
	registry   registry.Client
	producer   kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Appointment,
	quota quotaSvc.Quota,
	conferenceClient conference.Client,
	registryClient registry.Client,
	producer kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:       repo,
		quota:      quota,
		conference: conferenceClient,
		registry:   registryClient,
		producer:   producer,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Request(ctx context.Context, req dto.RequestAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Request")
	defer scope.End()
	defer scope.TraceIfError(err)

	clientID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.registry.ApplicationExists(ctx, req.ApplicationID)
	if err != nil {
		log.Error().Err(err).Str("applicationID", req.ApplicationID).Msg("failed to check application registry")

		return res, failure.Unavailable("application registry unavailable") //nolint:wrapcheck
	}

	if !exists {
		return res, failure.BadRequestFromString("application does not exist") //nolint:wrapcheck
	}

	// Quota must reject before any appointment row exists. The reservation
	// lock is held until the row is inserted so a concurrent request for the
	// same client cannot slip through the standing check.
	if err = s.quota.Reserve(ctx, clientID); err != nil {
		return res, err
	}
	defer s.quota.Release(ctx, clientID)

	appointment, err := req.ToModel(clientID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse appointment request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, appointment); err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	res.FromModel(appointment)

	s.afterMutation(ctx, appointment, model.StateRequested, eventRequested)

	return res, nil
}

func (s *serviceImpl) Propose(ctx context.Context, id string, req dto.ProposeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Propose")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdvisor && role != constant.RoleAdmin {
		return failure.Forbidden(msgAdvisorOnly) //nolint:wrapcheck
	}

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if appointment.State != model.StateRequested && appointment.State != model.StateProposed {
		return s.rejectTransition(appointment)
	}

	date, clock, err := req.Parse()
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldState:        model.StateProposed,
		model.FieldProposedDate: date,
		model.FieldProposedTime: clock,
	}

	eventType := eventProposed

	if appointment.State == model.StateProposed {
		fields[model.FieldCounterProposalCount] = appointment.CounterProposalCount + 1
		eventType = eventCounterProposed
	}

	// The first proposal binds the advisor; both participants are immutable
	// afterwards.
	if appointment.AdvisorID == constant.Empty {
		fields[model.FieldAdvisorID] = user
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	s.afterMutation(ctx, appointment, model.StateProposed, eventType)

	return nil
}

func (s *serviceImpl) CounterPropose(ctx context.Context, id string, req dto.ProposeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.CounterPropose")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = s.requireParticipant(ctx, appointment); err != nil {
		return err
	}

	if appointment.State != model.StateProposed {
		return s.rejectTransition(appointment)
	}

	date, clock, err := req.Parse()
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldProposedDate:         date,
		model.FieldProposedTime:         clock,
		model.FieldCounterProposalCount: appointment.CounterProposalCount + 1,
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	s.afterMutation(ctx, appointment, model.StateProposed, eventCounterProposed)

	return nil
}

func (s *serviceImpl) Accept(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = s.requireParticipant(ctx, appointment); err != nil {
		return err
	}

	if appointment.State != model.StateProposed {
		return s.rejectTransition(appointment)
	}

	if appointment.ProposedDate == nil || appointment.ProposedTime == nil {
		err = errors.New("proposed appointment has no proposed date/time")
		logger.ErrorWithStack(err)

		return failure.InternalError(err) //nolint:wrapcheck
	}

	// Accept always confirms the live proposed values, never caller-supplied
	// ones; the version check below catches a concurrent counter-proposal.
	fields := map[string]any{
		model.FieldState:         model.StateConfirmed,
		model.FieldConfirmedDate: *appointment.ProposedDate,
		model.FieldConfirmedTime: *appointment.ProposedTime,
	}

	var room conference.Room

	if appointment.Modality == model.ModalityVirtual {
		// Room is provisioned before the state flips so a provider failure
		// leaves the appointment in proposed.
		room, err = s.conference.CreateRoom(ctx, appointment.ID)
		if err != nil {
			log.Error().Err(err).Str("appointmentID", id).Msg("failed to create virtual room")

			return failure.Unavailable(msgRoomCreationFailed) //nolint:wrapcheck
		}

		fields[model.FieldLocation] = room.JoinURL
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		if appointment.Modality == model.ModalityVirtual {
			s.releaseRoom(ctx, room.ID)
		}

		return err
	}

	s.afterMutation(ctx, appointment, model.StateConfirmed, eventConfirmed)

	return nil
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = s.requireParticipant(ctx, appointment); err != nil {
		return err
	}

	if appointment.State != model.StateRequested && appointment.State != model.StateProposed {
		return s.rejectTransition(appointment)
	}

	// Rejection never consumed a slot; the logical reservation is released by
	// the appointment leaving the non-terminal set.
	fields := map[string]any{
		model.FieldState:              model.StateCancelled,
		model.FieldCancelledBy:        role,
		model.FieldCancelledAt:        timezone.Now(),
		model.FieldCancellationReason: req.Reason,
		model.FieldPenaltyApplied:     false,
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	s.afterMutation(ctx, appointment, model.StateCancelled, eventCancelled)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = s.requireParticipant(ctx, appointment); err != nil {
		return err
	}

	if appointment.State != model.StateConfirmed && appointment.State != model.StateWaitingRoom {
		return s.rejectTransition(appointment)
	}

	hoursUntil := appointment.ConfirmedAt().Sub(timezone.Now()).Hours()

	outcome := policy.Evaluate(hoursUntil)
	if !outcome.CanCancel {
		log.Info().
			Str("appointmentID", id).
			Float64("hoursUntil", hoursUntil).
			Msg("cancellation blocked inside the window")

		return failure.PolicyRejection(msgCancellationWindowClosed) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldState:          model.StateCancelled,
		model.FieldCancelledBy:    role,
		model.FieldCancelledAt:    timezone.Now(),
		model.FieldPenaltyApplied: outcome.Penalized,
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	// The versioned flip above is the once-only gate; a raced second cancel
	// or completion cannot reach this consume.
	if outcome.Penalized {
		if err = s.quota.Consume(ctx, appointment.ClientID); err != nil {
			return err
		}
	}

	s.afterMutation(ctx, appointment, model.StateCancelled, eventCancelled)

	return nil
}

func (s *serviceImpl) EnterWaitingRoom(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.EnterWaitingRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = s.requireParticipant(ctx, appointment); err != nil {
		return err
	}

	if appointment.State != model.StateConfirmed && appointment.State != model.StateWaitingRoom {
		return s.rejectTransition(appointment)
	}

	fields := map[string]any{
		model.FieldState: model.StateWaitingRoom,
	}

	switch role {
	case constant.RoleClient:
		if appointment.ClientEnteredAt != nil && appointment.State == model.StateWaitingRoom {
			return nil
		}

		fields[model.FieldClientEnteredAt] = timezone.Now()
	default:
		if appointment.AdvisorEnteredAt != nil && appointment.State == model.StateWaitingRoom {
			return nil
		}

		fields[model.FieldAdvisorEnteredAt] = timezone.Now()
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	s.afterMutation(ctx, appointment, model.StateWaitingRoom, eventWaitingRoom)

	return nil
}

func (s *serviceImpl) Start(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdvisor && role != constant.RoleAdmin {
		return failure.Forbidden(msgAdvisorOnly) //nolint:wrapcheck
	}

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if appointment.State != model.StateConfirmed && appointment.State != model.StateWaitingRoom {
		return s.rejectTransition(appointment)
	}

	if appointment.AdvisorID == constant.Empty {
		err = errors.New("session start on appointment with no advisor assigned")
		logger.ErrorWithStack(err)

		return failure.InternalError(err) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldState:            model.StateInProgress,
		model.FieldSessionStartedAt: timezone.Now(),
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	s.afterMutation(ctx, appointment, model.StateInProgress, eventStarted)

	return nil
}

func (s *serviceImpl) End(ctx context.Context, id string, req dto.EndSessionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.End")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdvisor && role != constant.RoleAdmin {
		return failure.Forbidden(msgAdvisorOnly) //nolint:wrapcheck
	}

	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if appointment.State != model.StateInProgress {
		return s.rejectTransition(appointment)
	}

	now := timezone.Now()

	duration := req.DurationMinutes
	if duration == 0 && appointment.SessionStartedAt != nil {
		duration = int(now.Sub(*appointment.SessionStartedAt).Minutes())
	}

	fields := map[string]any{
		model.FieldState:           model.StateCompleted,
		model.FieldSessionEndedAt:  now,
		model.FieldDurationMinutes: duration,
	}

	if req.Notes != constant.Empty {
		fields[model.FieldAdvisorNotes] = req.Notes
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	// A completed session always counts against the quota. The terminal flip
	// above guarantees this runs at most once per appointment.
	if err = s.quota.Consume(ctx, appointment.ClientID); err != nil {
		return err
	}

	s.afterMutation(ctx, appointment, model.StateCompleted, eventCompleted)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListForClient(ctx context.Context, clientID string, params gDto.QueryParams) (dto.GetAppointmentsResponse, error) {
	return s.list(ctx, params, shared.FilterByID(clientID, model.FieldClientID, model.TableName))
}

func (s *serviceImpl) ListForAdvisor(ctx context.Context, advisorID string, params gDto.QueryParams) (dto.GetAppointmentsResponse, error) {
	return s.list(ctx, params, shared.FilterByID(advisorID, model.FieldAdvisorID, model.TableName))
}

func (s *serviceImpl) GetPresence(ctx context.Context, id string) (res dto.PresenceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.GetPresence")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cachePresence, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	appointment, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	// Short TTL keeps the projection within one polling interval of reality.
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Presence.TTLSeconds); err != nil {
			log.Error().Err(err).Msg("failed to save presence to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.list")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

// load fetches one appointment or a not-found failure.
func (s *serviceImpl) load(ctx context.Context, id string) (model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to get appointment")

		return appointment, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return appointment, failure.NotFound("appointment not found") //nolint:wrapcheck
	}

	return appointment, nil
}

// applyVersioned writes the fields only when the row still carries the
// version the caller read. Zero rows affected means a concurrent writer won.
func (s *serviceImpl) applyVersioned(ctx context.Context, appointment model.Appointment, fields map[string]any, user string) error {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	updated, err := s.repo.UpdateVersioned(ctx, fields, appointment.ID, appointment.Version)
	if err != nil {
		log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to update appointment")

		return fmt.Errorf("failed to update appointment: %w", err)
	}

	if !updated {
		log.Info().
			Str("appointmentID", appointment.ID).
			Int("version", appointment.Version).
			Msg("stale appointment write rejected")

		return failure.Conflict(msgStaleProposal) //nolint:wrapcheck
	}

	return nil
}

// rejectTransition maps an illegal transition onto the error taxonomy: a
// terminal appointment is a conflict, anything else a policy rejection.
func (s *serviceImpl) rejectTransition(appointment model.Appointment) error {
	if appointment.IsTerminal() {
		return failure.Conflict(msgTerminalAppointment) //nolint:wrapcheck
	}

	return failure.PolicyRejection(fmt.Sprintf("%s: appointment is %s", msgInvalidStateTransition, appointment.State)) //nolint:wrapcheck
}

// requireParticipant restricts an operation to the appointment's own client
// and advisor. Admins pass.
func (s *serviceImpl) requireParticipant(ctx context.Context, appointment model.Appointment) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleAdmin {
		return nil
	}

	if user != appointment.ClientID && user != appointment.AdvisorID {
		return failure.Forbidden(msgNotParticipant) //nolint:wrapcheck
	}

	return nil
}

// afterMutation publishes the lifecycle event and drops stale cache entries.
func (s *serviceImpl) afterMutation(ctx context.Context, appointment model.Appointment, newState, eventType string) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.LifecycleEvent{
			EventType:     eventType,
			AppointmentID: appointment.ID,
			ClientID:      appointment.ClientID,
			AdvisorID:     appointment.AdvisorID,
			State:         newState,
			OccurredAt:    timezone.Now().Format(constant.DateFormat),
		}

		err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.AppointmentEvents, kafka.Message{
			Key:   appointment.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("eventType", eventType).Msg("failed to publish appointment event")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, appointment.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cachePresence, appointment.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete presence from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}

// releaseRoom tears down a room whose accept lost the version race.
func (s *serviceImpl) releaseRoom(ctx context.Context, roomID string) {
	if roomID == constant.Empty {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.conference.CloseRoom(c, roomID); err != nil {
			log.Error().Err(err).Str("roomID", roomID).Msg("failed to close orphaned room")
		}
	}()
}
