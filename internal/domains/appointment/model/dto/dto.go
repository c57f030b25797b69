package dto

import (
	"time"
	"visaprep/internal/domains/appointment/model"
	"visaprep/shared"
	"visaprep/shared/constant"
	gDto "visaprep/shared/dto"
	gModel "visaprep/shared/model"
	"visaprep/shared/timezone"

	"github.com/google/uuid"
)

type RequestAppointmentRequest struct {
	ApplicationID string `json:"application_id" validate:"required"`
	Modality      string `json:"modality"       validate:"required,oneof=virtual in_person"`
	PreferredDate string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
	PreferredTime string `json:"preferred_time" validate:"omitempty,datetime=15:04"`
	Location      string `json:"location"       validate:"omitempty,max=200"`
}

func (r *RequestAppointmentRequest) ToModel(clientID string) (model.Appointment, error) {
	appointment := model.Appointment{
		ID:            uuid.NewString(),
		ClientID:      clientID,
		ApplicationID: r.ApplicationID,
		Modality:      r.Modality,
		State:         model.StateRequested,
		Location:      r.Location,
		Version:       1,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  clientID,
			ModifiedBy: clientID,
		},
	}

	if r.PreferredDate != "" {
		preferredDate, err := timezone.Parse(constant.CalendarFormat, r.PreferredDate)
		if err != nil {
			return model.Appointment{}, err
		}

		appointment.ProposedDate = &preferredDate
	}

	if r.PreferredTime != "" {
		preferredTime, err := timezone.Parse(constant.ClockFormat, r.PreferredTime)
		if err != nil {
			return model.Appointment{}, err
		}

		appointment.ProposedTime = &preferredTime
	}

	return appointment, nil
}

// ProposeRequest carries a tentative date/time; used by both the advisor's
// first proposal and either side's counter-proposal.
type ProposeRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// Parse interprets the wall-clock values in the application timezone, the
// same clock all scheduling arithmetic runs on.
func (r *ProposeRequest) Parse() (date, clock time.Time, err error) {
	date, err = timezone.Parse(constant.CalendarFormat, r.Date)
	if err != nil {
		return date, clock, err
	}

	clock, err = timezone.Parse(constant.ClockFormat, r.Time)

	return date, clock, err
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type EndSessionRequest struct {
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	Notes           string `json:"notes"            validate:"omitempty,max=2000"`
}

type CancellationResponse struct {
	CancelledBy    string `json:"cancelled_by"`
	CancelledAt    string `json:"cancelled_at"`
	Reason         string `json:"reason,omitempty"`
	PenaltyApplied bool   `json:"penalty_applied"`
}

type SessionResponse struct {
	ClientEnteredAt  string `json:"client_entered_at,omitempty"`
	AdvisorEnteredAt string `json:"advisor_entered_at,omitempty"`
	StartedAt        string `json:"started_at,omitempty"`
	EndedAt          string `json:"ended_at,omitempty"`
	DurationMinutes  int    `json:"duration_minutes,omitempty"`
	AdvisorNotes     string `json:"advisor_notes,omitempty"`
}

type AppointmentResponse struct {
	ID                   string                `json:"id"`
	ClientID             string                `json:"client_id"`
	AdvisorID            string                `json:"advisor_id,omitempty"`
	ApplicationID        string                `json:"application_id"`
	Modality             string                `json:"modality"`
	State                string                `json:"state"`
	ProposedDate         string                `json:"proposed_date,omitempty"`
	ProposedTime         string                `json:"proposed_time,omitempty"`
	ConfirmedDate        string                `json:"confirmed_date,omitempty"`
	ConfirmedTime        string                `json:"confirmed_time,omitempty"`
	Location             string                `json:"location,omitempty"`
	CounterProposalCount int                   `json:"counter_proposal_count"`
	Version              int                   `json:"version"`
	TranscriptAttached   bool                  `json:"transcript_attached"`
	Cancellation         *CancellationResponse `json:"cancellation,omitempty"`
	Session              *SessionResponse      `json:"session,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(appointment model.Appointment) {
	r.ID = appointment.ID
	r.ClientID = appointment.ClientID
	r.AdvisorID = appointment.AdvisorID
	r.ApplicationID = appointment.ApplicationID
	r.Modality = appointment.Modality
	r.State = appointment.State
	r.Location = appointment.Location
	r.CounterProposalCount = appointment.CounterProposalCount
	r.Version = appointment.Version
	r.TranscriptAttached = appointment.TranscriptAttached

	r.ProposedDate = formatDate(appointment.ProposedDate)
	r.ProposedTime = formatClock(appointment.ProposedTime)
	r.ConfirmedDate = formatDate(appointment.ConfirmedDate)
	r.ConfirmedTime = formatClock(appointment.ConfirmedTime)

	if appointment.CancelledAt != nil {
		r.Cancellation = &CancellationResponse{
			CancelledBy:    appointment.CancelledBy,
			CancelledAt:    appointment.CancelledAt.Format(constant.DateFormat),
			Reason:         appointment.CancellationReason,
			PenaltyApplied: appointment.PenaltyApplied,
		}
	}

	if appointment.ClientEnteredAt != nil || appointment.AdvisorEnteredAt != nil || appointment.SessionStartedAt != nil {
		r.Session = &SessionResponse{
			ClientEnteredAt:  formatTimestamp(appointment.ClientEnteredAt),
			AdvisorEnteredAt: formatTimestamp(appointment.AdvisorEnteredAt),
			StartedAt:        formatTimestamp(appointment.SessionStartedAt),
			EndedAt:          formatTimestamp(appointment.SessionEndedAt),
			DurationMinutes:  appointment.DurationMinutes,
			AdvisorNotes:     appointment.AdvisorNotes,
		}
	}

	r.Metadata.FromModel(appointment.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

// PresenceResponse is the polled waiting-room projection. Stateless and
// eventually consistent within one polling interval.
type PresenceResponse struct {
	AppointmentID    string `json:"appointment_id"`
	State            string `json:"state"`
	ClientPresent    bool   `json:"client_present"`
	AdvisorPresent   bool   `json:"advisor_present"`
	ClientEnteredAt  string `json:"client_entered_at,omitempty"`
	AdvisorEnteredAt string `json:"advisor_entered_at,omitempty"`
}

func (r *PresenceResponse) FromModel(appointment model.Appointment) {
	r.AppointmentID = appointment.ID
	r.State = appointment.State
	r.ClientPresent = appointment.ClientEnteredAt != nil
	r.AdvisorPresent = appointment.AdvisorEnteredAt != nil
	r.ClientEnteredAt = formatTimestamp(appointment.ClientEnteredAt)
	r.AdvisorEnteredAt = formatTimestamp(appointment.AdvisorEnteredAt)
}

// LifecycleEvent is published to the notification feed topic on every state
// transition.
type LifecycleEvent struct {
	EventType     string `json:"event_type"`
	AppointmentID string `json:"appointment_id"`
	ClientID      string `json:"client_id"`
	AdvisorID     string `json:"advisor_id,omitempty"`
	State         string `json:"state"`
	OccurredAt    string `json:"occurred_at"`
}

func formatDate(value *time.Time) string {
	if value == nil {
		return constant.Empty
	}

	return value.Format(constant.CalendarFormat)
}

func formatClock(value *time.Time) string {
	if value == nil {
		return constant.Empty
	}

	return value.Format(constant.ClockFormat)
}

func formatTimestamp(value *time.Time) string {
	if value == nil {
		return constant.Empty
	}

	return value.Format(constant.DateFormat)
}
