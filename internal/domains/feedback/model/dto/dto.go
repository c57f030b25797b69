package dto

import (
	"visaprep/internal/domains/appointment/model"
	"visaprep/shared/constant"
)

const (
	RecommendationStatusPending = "pending"
	RecommendationStatusReady   = "ready"
)

type AttachTranscriptRequest struct {
	Text string `json:"text" validate:"required"`
}

type ManualFeedbackRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// RecommendationResponse is the client-visible result view. Content is only
// populated once feedback exists; before that the client sees pending, never
// a partial result.
type RecommendationResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
	Source        string `json:"source,omitempty"`
	Content       string `json:"content,omitempty"`
	SubmittedAt   string `json:"submitted_at,omitempty"`
}

func (r *RecommendationResponse) FromModel(appointment model.Appointment) {
	r.AppointmentID = appointment.ID

	if appointment.FeedbackSource == constant.Empty {
		r.Status = RecommendationStatusPending

		return
	}

	r.Status = RecommendationStatusReady
	r.Source = appointment.FeedbackSource
	r.Content = appointment.FeedbackContent

	if appointment.FeedbackSubmittedAt != nil {
		r.SubmittedAt = appointment.FeedbackSubmittedAt.Format(constant.DateFormat)
	}
}
