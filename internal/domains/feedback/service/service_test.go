package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"visaprep/config"
	"visaprep/infras/analysis"
	analysisMocks "visaprep/infras/analysis/mocks"
	kafkaMocks "visaprep/infras/kafka/mocks"
	otelMocks "visaprep/infras/otel/mocks"
	s3Mocks "visaprep/infras/s3/mocks"
	apptMocks "visaprep/internal/domains/appointment/mocks"
	apptModel "visaprep/internal/domains/appointment/model"
	"visaprep/internal/domains/feedback/model/dto"
	"visaprep/internal/domains/feedback/service"
	cacheMocks "visaprep/shared/cache/mocks"
	"visaprep/shared/constant"
	"visaprep/shared/failure"
	"visaprep/shared/timezone"
)

const asyncSettle = 50 * time.Millisecond

type fixture struct {
	svc      service.Feedback
	repo     *apptMocks.MockAppointment
	archive  *s3Mocks.MockS3
	analysis *analysisMocks.MockClient
	producer *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     apptMocks.NewMockAppointment(ctrl),
		archive:  s3Mocks.NewMockS3(ctrl),
		analysis: analysisMocks.NewMockClient(ctrl),
		producer: kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.TranscriptPrefix = "transcripts"
	cfg.Kafka.Topics.AppointmentEvents = "simulation.appointment.events"

	f.svc = service.New(f.repo, f.archive, f.analysis, f.producer, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func (f fixture) allowAsync() {
	f.producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func completedAppointment() apptModel.Appointment {
	return apptModel.Appointment{
		ID:        "appt-1",
		ClientID:  "client-1",
		AdvisorID: "advisor-1",
		Modality:  apptModel.ModalityVirtual,
		State:     apptModel.StateCompleted,
		Version:   7,
	}
}

func ctxAs(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func TestFeedbackService_AttachTranscript(t *testing.T) {
	req := dto.AttachTranscriptRequest{Text: "Q: Why do you want this visa? A: ..."}

	t.Run("transcript is archived under a stable key", func(t *testing.T) {
		f := newFixture(t)
		f.allowAsync()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedAppointment(), nil)
		f.archive.EXPECT().
			UploadFileBytes(gomock.Any(), "", "transcripts", "appt-1.txt", "text/plain; charset=utf-8", []byte(req.Text)).
			Return("https://archive.example/bucket/transcripts/appt-1.txt", nil)
		f.repo.EXPECT().UpdateVersioned(gomock.Any(), gomock.Any(), "appt-1", 7).DoAndReturn(
			func(_ context.Context, mod map[string]any, _ string, _ int) (bool, error) {
				assert.Equal(t, true, mod[apptModel.FieldTranscriptAttached])
				assert.Equal(t, "https://archive.example/bucket/transcripts/appt-1.txt", mod[apptModel.FieldTranscriptURL])
				return true, nil
			})

		err := f.svc.AttachTranscript(ctxAs("advisor-1"), "appt-1", req)

		assert.NoError(t, err)
		time.Sleep(asyncSettle)
	})

	t.Run("archive outage is retryable and leaves the appointment untouched", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedAppointment(), nil)
		f.archive.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("connection reset"))
		// No UpdateVersioned expectation: nothing may be recorded.

		err := f.svc.AttachTranscript(ctxAs("advisor-1"), "appt-1", req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})

	t.Run("attaching to a non-completed appointment is an invariant breach", func(t *testing.T) {
		f := newFixture(t)

		appointment := completedAppointment()
		appointment.State = apptModel.StateInProgress

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		err := f.svc.AttachTranscript(ctxAs("advisor-1"), "appt-1", req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestFeedbackService_SubmitManualFeedback(t *testing.T) {
	req := dto.ManualFeedbackRequest{Content: "Work on concise answers about funding."}

	t.Run("manual feedback is stored and announced", func(t *testing.T) {
		f := newFixture(t)
		f.allowAsync()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedAppointment(), nil)
		f.repo.EXPECT().UpdateVersioned(gomock.Any(), gomock.Any(), "appt-1", 7).DoAndReturn(
			func(_ context.Context, mod map[string]any, _ string, _ int) (bool, error) {
				assert.Equal(t, apptModel.FeedbackSourceManual, mod[apptModel.FieldFeedbackSource])
				assert.Equal(t, req.Content, mod[apptModel.FieldFeedbackContent])
				return true, nil
			})

		err := f.svc.SubmitManualFeedback(ctxAs("advisor-1"), "appt-1", req)

		assert.NoError(t, err)
		time.Sleep(asyncSettle)
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(apptModel.Appointment{}, nil)

		err := f.svc.SubmitManualFeedback(ctxAs("advisor-1"), "missing", req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestFeedbackService_RequestGeneratedFeedback(t *testing.T) {
	t.Run("generation requires an attached transcript", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedAppointment(), nil)
		// No Generate or UpdateVersioned expectation: the gate rejects first.

		err := f.svc.RequestGeneratedFeedback(ctxAs("advisor-1"), "appt-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("analysis outage leaves feedback unset for a retry", func(t *testing.T) {
		f := newFixture(t)

		appointment := completedAppointment()
		appointment.TranscriptAttached = true
		appointment.TranscriptURL = "https://archive.example/bucket/transcripts/appt-1.txt"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.analysis.EXPECT().
			Generate(gomock.Any(), "appt-1", appointment.TranscriptURL).
			Return(analysis.Recommendation{}, analysis.ErrUnavailable)
		// No UpdateVersioned expectation: a failed attempt records nothing.

		err := f.svc.RequestGeneratedFeedback(ctxAs("advisor-1"), "appt-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})

	t.Run("successful generation stores the recommendation", func(t *testing.T) {
		f := newFixture(t)
		f.allowAsync()

		appointment := completedAppointment()
		appointment.TranscriptAttached = true
		appointment.TranscriptURL = "https://archive.example/bucket/transcripts/appt-1.txt"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)
		f.analysis.EXPECT().
			Generate(gomock.Any(), "appt-1", appointment.TranscriptURL).
			Return(analysis.Recommendation{
				Summary:       "Confident overall",
				Strengths:     []string{"clear study plan"},
				Improvements:  []string{"financial details"},
				OverallRating: 4,
			}, nil)
		f.repo.EXPECT().UpdateVersioned(gomock.Any(), gomock.Any(), "appt-1", 7).DoAndReturn(
			func(_ context.Context, mod map[string]any, _ string, _ int) (bool, error) {
				assert.Equal(t, apptModel.FeedbackSourceGenerated, mod[apptModel.FieldFeedbackSource])
				assert.Contains(t, mod[apptModel.FieldFeedbackContent], "Confident overall")
				return true, nil
			})

		err := f.svc.RequestGeneratedFeedback(ctxAs("advisor-1"), "appt-1")

		assert.NoError(t, err)
		time.Sleep(asyncSettle)
	})
}

func TestFeedbackService_GetRecommendation(t *testing.T) {
	t.Run("pending before any feedback exists", func(t *testing.T) {
		f := newFixture(t)
		f.allowAsync()

		f.cache.EXPECT().Get(gomock.Any(), "feedback:recommendation:appt-1", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedAppointment(), nil)

		res, err := f.svc.GetRecommendation(context.Background(), "appt-1")

		assert.NoError(t, err)
		assert.Equal(t, dto.RecommendationStatusPending, res.Status)
		assert.Empty(t, res.Content)

		time.Sleep(asyncSettle)
	})

	t.Run("ready once feedback is set", func(t *testing.T) {
		f := newFixture(t)
		f.allowAsync()

		submitted := timezone.Now()
		appointment := completedAppointment()
		appointment.FeedbackSource = apptModel.FeedbackSourceManual
		appointment.FeedbackContent = "Work on concise answers."
		appointment.FeedbackSubmittedAt = &submitted

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(appointment, nil)

		res, err := f.svc.GetRecommendation(context.Background(), "appt-1")

		assert.NoError(t, err)
		assert.Equal(t, dto.RecommendationStatusReady, res.Status)
		assert.Equal(t, apptModel.FeedbackSourceManual, res.Source)
		assert.Equal(t, "Work on concise answers.", res.Content)

		time.Sleep(asyncSettle)
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(apptModel.Appointment{}, nil)

		_, err := f.svc.GetRecommendation(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
