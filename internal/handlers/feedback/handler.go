package feedback

import (
	"net/http"
	"visaprep/infras/otel"
	"visaprep/internal/domains/feedback/model/dto"
	"visaprep/internal/domains/feedback/service"
	"visaprep/shared/constant"
	"visaprep/shared/validator"
	"visaprep/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Feedback
	otel    otel.Otel
}

func New(service service.Feedback, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments/{id}/feedback", func(routerGroup chi.Router) {
		routerGroup.Put("/transcript", handler.AttachTranscript)
		routerGroup.Post("/manual", handler.SubmitManualFeedback)
		routerGroup.Post("/generate", handler.RequestGeneratedFeedback)
		routerGroup.Get("/recommendation", handler.GetRecommendation)
	})
}

// AttachTranscript archives the session transcript.
// @Summary Attach a session transcript
// @Description Stores the transcript in the archive; re-attachment replaces the previous content.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.AttachTranscriptRequest true "Transcript"
// @Success 200 {object} response.Message "Transcript attached"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error "Archive unavailable"
// @Router /v1/appointments/{id}/feedback/transcript [put]
// @Security BearerAuth
func (handler *Handler) AttachTranscript(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AttachTranscript")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AttachTranscriptRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AttachTranscript(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to attach transcript")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Transcript attached")

	response.WithMessage(w, http.StatusOK, "Transcript attached")
}

// SubmitManualFeedback records advisor-written feedback.
// @Summary Submit manual feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.ManualFeedbackRequest true "Feedback"
// @Success 200 {object} response.Message "Feedback submitted"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/feedback/manual [post]
// @Security BearerAuth
func (handler *Handler) SubmitManualFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitManualFeedback")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ManualFeedbackRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SubmitManualFeedback(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit manual feedback")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Manual feedback submitted")

	response.WithMessage(w, http.StatusOK, "Feedback submitted")
}

// RequestGeneratedFeedback asks the analysis backend for a recommendation.
// @Summary Request generated feedback
// @Description Requires an attached transcript; a failed attempt leaves feedback unset and may be retried.
// @Tags Feedback
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Feedback generated"
// @Failure 422 {object} response.Error "Transcript missing"
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error "Analysis unavailable"
// @Router /v1/appointments/{id}/feedback/generate [post]
// @Security BearerAuth
func (handler *Handler) RequestGeneratedFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestGeneratedFeedback")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.RequestGeneratedFeedback(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate feedback")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Generated feedback stored")

	response.WithMessage(w, http.StatusOK, "Feedback generated")
}

// GetRecommendation serves the client-visible result view.
// @Summary Get the recommendation view
// @Description Returns the feedback once set; a pending status before that, never a partial result.
// @Tags Feedback
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.RecommendationResponse] "Recommendation or pending status"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/feedback/recommendation [get]
// @Security BearerAuth
func (handler *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRecommendation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	recommendation, err := handler.service.GetRecommendation(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get recommendation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, recommendation)
}
