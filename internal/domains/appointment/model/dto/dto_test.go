package dto_test

import (
	"testing"
	"time"

	"visaprep/internal/domains/appointment/model"
	"visaprep/internal/domains/appointment/model/dto"
	gModel "visaprep/shared/model"
	"visaprep/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestRequestAppointmentRequest_ToModel(t *testing.T) {
	req := dto.RequestAppointmentRequest{
		ApplicationID: "app-1",
		Modality:      model.ModalityVirtual,
		PreferredDate: "2026-10-01",
		PreferredTime: "14:30",
	}

	clientID := "client-1"
	appointment, err := req.ToModel(clientID)

	assert.NoError(t, err)
	assert.NotEmpty(t, appointment.ID, "expected ID to be generated")
	assert.Equal(t, clientID, appointment.ClientID)
	assert.Equal(t, req.ApplicationID, appointment.ApplicationID)
	assert.Equal(t, model.ModalityVirtual, appointment.Modality)
	assert.Equal(t, model.StateRequested, appointment.State)
	assert.Equal(t, 1, appointment.Version)
	assert.Equal(t, clientID, appointment.CreatedBy)
	assert.Equal(t, clientID, appointment.ModifiedBy)
	assert.False(t, appointment.CreatedAt.IsZero(), "expected CreatedAt to be set")

	if assert.NotNil(t, appointment.ProposedDate) {
		assert.Equal(t, "2026-10-01", appointment.ProposedDate.Format("2006-01-02"))
	}
	if assert.NotNil(t, appointment.ProposedTime) {
		assert.Equal(t, "14:30", appointment.ProposedTime.Format("15:04"))
	}
}

func TestRequestAppointmentRequest_ToModelWithoutPreferences(t *testing.T) {
	req := dto.RequestAppointmentRequest{
		ApplicationID: "app-1",
		Modality:      model.ModalityInPerson,
		Location:      "Consulate office, room 2",
	}

	appointment, err := req.ToModel("client-1")

	assert.NoError(t, err)
	assert.Nil(t, appointment.ProposedDate)
	assert.Nil(t, appointment.ProposedTime)
	assert.Equal(t, "Consulate office, room 2", appointment.Location)
}

func TestRequestAppointmentRequest_ToModelInvalidDate(t *testing.T) {
	req := dto.RequestAppointmentRequest{
		ApplicationID: "app-1",
		Modality:      model.ModalityVirtual,
		PreferredDate: "01/10/2026",
	}

	_, err := req.ToModel("client-1")

	assert.Error(t, err)
}

func TestProposeRequest_Parse(t *testing.T) {
	req := dto.ProposeRequest{Date: "2026-10-01", Time: "09:15"}

	date, clock, err := req.Parse()

	assert.NoError(t, err)
	assert.Equal(t, "2026-10-01", date.Format("2006-01-02"))
	assert.Equal(t, "09:15", clock.Format("15:04"))
}

func TestProposeRequest_ParseKeepsWallClockDistance(t *testing.T) {
	// A slot 20 wall-clock hours away must stay 20 hours away once the parsed
	// date and clock are recombined, whatever timezone the app runs in. The
	// cancellation window boundaries depend on this.
	target := timezone.Now().Add(20 * time.Hour)

	req := dto.ProposeRequest{
		Date: target.Format("2006-01-02"),
		Time: target.Format("15:04"),
	}

	date, clock, err := req.Parse()
	assert.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), date.Location())

	appointment := model.Appointment{
		ConfirmedDate: &date,
		ConfirmedTime: &clock,
	}

	confirmedAt := appointment.ConfirmedAt()
	assert.Equal(t, timezone.GetLocation(), confirmedAt.Location())
	assert.InDelta(t, 20.0, confirmedAt.Sub(timezone.Now()).Hours(), 0.05)
}

func TestProposeRequest_ParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		req  dto.ProposeRequest
	}{
		{
			name: "bad date",
			req:  dto.ProposeRequest{Date: "October 1st", Time: "09:15"},
		},
		{
			name: "bad time",
			req:  dto.ProposeRequest{Date: "2026-10-01", Time: "9:15 AM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.req.Parse()
			assert.Error(t, err)
		})
	}
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	proposedDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	proposedTime := time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)

	appointment := model.Appointment{
		ID:                   "appt-1",
		ClientID:             "client-1",
		AdvisorID:            "advisor-1",
		ApplicationID:        "app-1",
		Modality:             model.ModalityVirtual,
		State:                model.StateConfirmed,
		ProposedDate:         &proposedDate,
		ProposedTime:         &proposedTime,
		ConfirmedDate:        &proposedDate,
		ConfirmedTime:        &proposedTime,
		Location:             "https://conference.example/room/abc",
		CounterProposalCount: 2,
		Version:              4,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "client-1",
			ModifiedBy: "advisor-1",
		},
	}

	var response dto.AppointmentResponse
	response.FromModel(appointment)

	assert.Equal(t, appointment.ID, response.ID)
	assert.Equal(t, appointment.State, response.State)
	assert.Equal(t, "2026-10-01", response.ProposedDate)
	assert.Equal(t, "14:30", response.ProposedTime)
	assert.Equal(t, "2026-10-01", response.ConfirmedDate)
	assert.Equal(t, "14:30", response.ConfirmedTime)
	assert.Equal(t, 2, response.CounterProposalCount)
	assert.Equal(t, 4, response.Version)
	assert.Nil(t, response.Cancellation)
	assert.Nil(t, response.Session)
	assert.Equal(t, "advisor-1", response.ModifiedBy)
}

func TestAppointmentResponse_FromModelCancelled(t *testing.T) {
	cancelledAt := timezone.Now()

	appointment := model.Appointment{
		ID:                 "appt-1",
		ClientID:           "client-1",
		State:              model.StateCancelled,
		CancelledBy:        "client-1",
		CancelledAt:        &cancelledAt,
		CancellationReason: "schedule conflict",
		PenaltyApplied:     true,
		Version:            5,
	}

	var response dto.AppointmentResponse
	response.FromModel(appointment)

	if assert.NotNil(t, response.Cancellation) {
		assert.Equal(t, "client-1", response.Cancellation.CancelledBy)
		assert.Equal(t, "schedule conflict", response.Cancellation.Reason)
		assert.True(t, response.Cancellation.PenaltyApplied)
		assert.NotEmpty(t, response.Cancellation.CancelledAt)
	}
}

func TestAppointmentResponse_FromModelWithSession(t *testing.T) {
	started := timezone.Now().Add(-40 * time.Minute)
	ended := timezone.Now()
	entered := started.Add(-5 * time.Minute)

	appointment := model.Appointment{
		ID:               "appt-1",
		State:            model.StateCompleted,
		ClientEnteredAt:  &entered,
		AdvisorEnteredAt: &entered,
		SessionStartedAt: &started,
		SessionEndedAt:   &ended,
		DurationMinutes:  40,
		AdvisorNotes:     "strong answers on study plans",
	}

	var response dto.AppointmentResponse
	response.FromModel(appointment)

	if assert.NotNil(t, response.Session) {
		assert.NotEmpty(t, response.Session.StartedAt)
		assert.NotEmpty(t, response.Session.EndedAt)
		assert.Equal(t, 40, response.Session.DurationMinutes)
		assert.Equal(t, "strong answers on study plans", response.Session.AdvisorNotes)
	}
}

func TestGetAppointmentsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	appointments := []model.Appointment{
		{
			ID:       "appt-1",
			ClientID: "client-1",
			State:    model.StateRequested,
			Version:  1,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "client-1",
				ModifiedBy: "client-1",
			},
		},
		{
			ID:       "appt-2",
			ClientID: "client-1",
			State:    model.StateCompleted,
			Version:  8,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "client-1",
				ModifiedBy: "advisor-1",
			},
		},
	}

	totalData := 15
	limit := 10

	var response dto.GetAppointmentsResponse
	response.FromModels(appointments, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Appointments, len(appointments))

	for i, appointment := range response.Appointments {
		assert.Equal(t, appointments[i].ID, appointment.ID)
		assert.Equal(t, appointments[i].State, appointment.State)
	}
}

func TestGetAppointmentsResponse_FromModels_EmptyList(t *testing.T) {
	var appointments []model.Appointment

	var response dto.GetAppointmentsResponse
	response.FromModels(appointments, 0, 10)

	assert.Equal(t, 0, response.TotalData)
	assert.Equal(t, 1, response.TotalPage)
	assert.Len(t, response.Appointments, 0)
}

func TestPresenceResponse_FromModel(t *testing.T) {
	entered := timezone.Now()

	appointment := model.Appointment{
		ID:              "appt-1",
		State:           model.StateWaitingRoom,
		ClientEnteredAt: &entered,
	}

	var response dto.PresenceResponse
	response.FromModel(appointment)

	assert.Equal(t, "appt-1", response.AppointmentID)
	assert.Equal(t, model.StateWaitingRoom, response.State)
	assert.True(t, response.ClientPresent)
	assert.False(t, response.AdvisorPresent)
	assert.NotEmpty(t, response.ClientEnteredAt)
	assert.Empty(t, response.AdvisorEnteredAt)
}
