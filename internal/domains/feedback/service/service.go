package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"visaprep/config"
	"visaprep/infras/analysis"
	"visaprep/infras/kafka"
	"visaprep/infras/otel"
	"visaprep/infras/s3"
	apptModel "visaprep/internal/domains/appointment/model"
	apptRepo "visaprep/internal/domains/appointment/repository"
	"visaprep/internal/domains/feedback/model/dto"
	"visaprep/shared"
	"visaprep/shared/cache"
	"visaprep/shared/constant"
	"visaprep/shared/failure"
	"visaprep/shared/logger"
	"visaprep/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment = "appointment:get"
	cacheRecommendation = "feedback:recommendation"

	msgAnalysisUnavailable = "analysis service unavailable, try again later"
	msgTranscriptRequired  = "transcript must be attached before requesting generated feedback"

	eventFeedbackReady = "appointment.feedback_ready"

	transcriptContentType = "text/plain; charset=utf-8"
)

// Feedback gates post-session results: transcript archiving, manual advisor
// feedback, and generated recommendations. All operations require the
// appointment to be completed.
type Feedback interface {
	AttachTranscript(ctx context.Context, id string, req dto.AttachTranscriptRequest) error
	SubmitManualFeedback(ctx context.Context, id string, req dto.ManualFeedbackRequest) error
	RequestGeneratedFeedback(ctx context.Context, id string) error
	GetRecommendation(ctx context.Context, id string) (dto.RecommendationResponse, error)
}

type serviceImpl struct {
	repo     apptRepo.Appointment
	archive  s3.S3
	analysis analysis.Client
	producer kafka.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo apptRepo.Appointment,
	archive s3.S3,
	analysisClient analysis.Client,
	producer kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Feedback {
	return &serviceImpl{
		repo:     repo,
		archive:  archive,
		analysis: analysisClient,
		producer: producer,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) AttachTranscript(ctx context.Context, id string, req dto.AttachTranscriptRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.AttachTranscript")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.loadCompleted(ctx, id)
	if err != nil {
		return err
	}

	// Re-attachment replaces: the object key is stable per appointment.
	url, err := s.archive.UploadFileBytes(
		ctx,
		constant.Empty,
		s.cfg.External.S3.TranscriptPrefix,
		id+".txt",
		transcriptContentType,
		[]byte(req.Text),
	)
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to archive transcript")

		return failure.Unavailable("transcript archive unavailable, try again") //nolint:wrapcheck
	}

	fields := map[string]any{
		apptModel.FieldTranscriptAttached: true,
		apptModel.FieldTranscriptURL:      url,
	}

	return s.applyVersioned(ctx, appointment, fields, user)
}

func (s *serviceImpl) SubmitManualFeedback(ctx context.Context, id string, req dto.ManualFeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.SubmitManualFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.loadCompleted(ctx, id)
	if err != nil {
		return err
	}

	fields := map[string]any{
		apptModel.FieldFeedbackSource:      apptModel.FeedbackSourceManual,
		apptModel.FieldFeedbackContent:     req.Content,
		apptModel.FieldFeedbackSubmittedAt: timezone.Now(),
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	s.publishFeedbackReady(ctx, appointment)

	return nil
}

func (s *serviceImpl) RequestGeneratedFeedback(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.RequestGeneratedFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := s.loadCompleted(ctx, id)
	if err != nil {
		return err
	}

	if !appointment.TranscriptAttached {
		return failure.PolicyRejection(msgTranscriptRequired) //nolint:wrapcheck
	}

	// Single bounded-timeout attempt; a failure leaves feedback unset so the
	// caller can retry freely.
	recommendation, err := s.analysis.Generate(ctx, appointment.ID, appointment.TranscriptURL)
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to generate feedback")

		return failure.Unavailable(msgAnalysisUnavailable) //nolint:wrapcheck
	}

	content, err := json.Marshal(recommendation)
	if err != nil {
		logger.ErrorWithStack(err)

		return failure.InternalError(err) //nolint:wrapcheck
	}

	fields := map[string]any{
		apptModel.FieldFeedbackSource:      apptModel.FeedbackSourceGenerated,
		apptModel.FieldFeedbackContent:     string(content),
		apptModel.FieldFeedbackSubmittedAt: timezone.Now(),
	}

	if err = s.applyVersioned(ctx, appointment, fields, user); err != nil {
		return err
	}

	s.publishFeedbackReady(ctx, appointment)

	return nil
}

func (s *serviceImpl) GetRecommendation(ctx context.Context, id string) (res dto.RecommendationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.GetRecommendation")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheRecommendation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for recommendation")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, apptModel.FieldID, apptModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") //nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save recommendation to cache")
		}
	}()

	return res, nil
}

// loadCompleted fetches the appointment and enforces the completed-only gate.
// Calling a feedback operation on a non-completed appointment is a caller
// bug, not a user-recoverable outcome.
func (s *serviceImpl) loadCompleted(ctx context.Context, id string) (apptModel.Appointment, error) {
	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, apptModel.FieldID, apptModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to get appointment")

		return appointment, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return appointment, failure.NotFound("appointment not found") //nolint:wrapcheck
	}

	if appointment.State != apptModel.StateCompleted {
		err = errors.New("feedback operation on non-completed appointment")
		logger.ErrorWithStack(err)

		return appointment, failure.InternalError(err) //nolint:wrapcheck
	}

	return appointment, nil
}

func (s *serviceImpl) applyVersioned(ctx context.Context, appointment apptModel.Appointment, fields map[string]any, user string) error {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	updated, err := s.repo.UpdateVersioned(ctx, fields, appointment.ID, appointment.Version)
	if err != nil {
		log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to update appointment feedback")

		return fmt.Errorf("failed to update appointment feedback: %w", err)
	}

	if !updated {
		return failure.Conflict("appointment was modified concurrently, re-fetch and retry") //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, appointment.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheRecommendation, appointment.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete recommendation from cache")
		}
	}()

	return nil
}

func (s *serviceImpl) publishFeedbackReady(ctx context.Context, appointment apptModel.Appointment) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.AppointmentEvents, kafka.Message{
			Key: appointment.ID,
			Value: map[string]any{
				"event_type":     eventFeedbackReady,
				"appointment_id": appointment.ID,
				"client_id":      appointment.ClientID,
				"advisor_id":     appointment.AdvisorID,
				"state":          appointment.State,
				"occurred_at":    timezone.Now().Format(constant.DateFormat),
			},
		})
		if err != nil {
			log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to publish feedback event")
		}
	}()
}
