package model

import (
	"time"
	"visaprep/shared/model"
	"visaprep/shared/timezone"
)

const (
	TableName  = "simulation_appointments"
	EntityName = "appointment"

	FieldID                   = "id"
	FieldClientID             = "client_id"
	FieldAdvisorID            = "advisor_id"
	FieldApplicationID        = "application_id"
	FieldModality             = "modality"
	FieldState                = "state"
	FieldProposedDate         = "proposed_date"
	FieldProposedTime         = "proposed_time"
	FieldConfirmedDate        = "confirmed_date"
	FieldConfirmedTime        = "confirmed_time"
	FieldLocation             = "location"
	FieldCounterProposalCount = "counter_proposal_count"
	FieldVersion              = "version"
	FieldCancelledBy          = "cancelled_by"
	FieldCancelledAt          = "cancelled_at"
	FieldCancellationReason   = "cancellation_reason"
	FieldPenaltyApplied       = "penalty_applied"
	FieldClientEnteredAt      = "client_entered_at"
	FieldAdvisorEnteredAt     = "advisor_entered_at"
	FieldSessionStartedAt     = "session_started_at"
	FieldSessionEndedAt       = "session_ended_at"
	FieldDurationMinutes      = "duration_minutes"
	FieldAdvisorNotes         = "advisor_notes"
	FieldTranscriptAttached   = "transcript_attached"
	FieldTranscriptURL        = "transcript_url"
	FieldFeedbackSource       = "feedback_source"
	FieldFeedbackContent      = "feedback_content"
	FieldFeedbackSubmittedAt  = "feedback_submitted_at"
)

const (
	StateRequested   = "requested"
	StateProposed    = "proposed"
	StateConfirmed   = "confirmed"
	StateWaitingRoom = "waiting_room"
	StateInProgress  = "in_progress"
	StateCompleted   = "completed"
	StateCancelled   = "cancelled"
)

const (
	ModalityVirtual  = "virtual"
	ModalityInPerson = "in_person"
)

const (
	FeedbackSourceManual    = "manual"
	FeedbackSourceGenerated = "generated"
)

// TerminalStates lists the states from which no further mutation is legal.
var TerminalStates = []string{StateCompleted, StateCancelled}

type Appointment struct {
	ID                   string     `db:"id"`
	ClientID             string     `db:"client_id"`
	AdvisorID            string     `db:"advisor_id"`
	ApplicationID        string     `db:"application_id"`
	Modality             string     `db:"modality"`
	State                string     `db:"state"`
	ProposedDate         *time.Time `db:"proposed_date"`
	ProposedTime         *time.Time `db:"proposed_time"`
	ConfirmedDate        *time.Time `db:"confirmed_date"`
	ConfirmedTime        *time.Time `db:"confirmed_time"`
	Location             string     `db:"location"`
	CounterProposalCount int        `db:"counter_proposal_count"`
	Version              int        `db:"version"`
	CancelledBy          string     `db:"cancelled_by"`
	CancelledAt          *time.Time `db:"cancelled_at"`
	CancellationReason   string     `db:"cancellation_reason"`
	PenaltyApplied       bool       `db:"penalty_applied"`
	ClientEnteredAt      *time.Time `db:"client_entered_at"`
	AdvisorEnteredAt     *time.Time `db:"advisor_entered_at"`
	SessionStartedAt     *time.Time `db:"session_started_at"`
	SessionEndedAt       *time.Time `db:"session_ended_at"`
	DurationMinutes      int        `db:"duration_minutes"`
	AdvisorNotes         string     `db:"advisor_notes"`
	TranscriptAttached   bool       `db:"transcript_attached"`
	TranscriptURL        string     `db:"transcript_url"`
	FeedbackSource       string     `db:"feedback_source"`
	FeedbackContent      string     `db:"feedback_content"`
	FeedbackSubmittedAt  *time.Time `db:"feedback_submitted_at"`
	model.Metadata
}

// IsTerminal reports whether the appointment can no longer be mutated.
func (a *Appointment) IsTerminal() bool {
	return a.State == StateCompleted || a.State == StateCancelled
}

// ConfirmedAt combines the confirmed calendar date and clock time into a
// single instant in the application timezone. Both fields must be set, which
// holds from confirmed onward. The stored values are wall-clock components
// (the driver hands them back UTC-located), so the instant is rebuilt in the
// app location rather than trusting the stored one.
func (a *Appointment) ConfirmedAt() time.Time {
	if a.ConfirmedDate == nil || a.ConfirmedTime == nil {
		return time.Time{}
	}

	date := *a.ConfirmedDate
	clock := *a.ConfirmedTime

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		timezone.GetLocation(),
	)
}
