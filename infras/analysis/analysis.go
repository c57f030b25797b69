package analysis

//go:generate go run go.uber.org/mock/mockgen -source=./analysis.go -destination=./mocks/analysis_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"visaprep/config"
	"visaprep/infras/otel"
	"visaprep/shared/constant"

	"github.com/rs/zerolog/log"
)

// ErrUnavailable reports that the analysis backend could not serve the
// request right now; callers may retry later without side effects.
var ErrUnavailable = errors.New("analysis service unavailable")

const otelAttrAppointmentID = "appointment_id"

// Recommendation is the automated performance summary produced from a
// session transcript.
type Recommendation struct {
	Summary       string   `json:"summary"`
	Strengths     []string `json:"strengths"`
	Improvements  []string `json:"improvements"`
	OverallRating int      `json:"overall_rating"`
}

type generateRequest struct {
	ReferenceID   string `json:"reference_id"`
	TranscriptURL string `json:"transcript_url"`
}

// Client talks to the transcript-analysis backend.
type Client interface {
	Generate(ctx context.Context, appointmentID, transcriptURL string) (Recommendation, error)
}

type clientImpl struct {
	config     *config.Config
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	return &clientImpl{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.External.Analysis.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (c *clientImpl) Generate(ctx context.Context, appointmentID, transcriptURL string) (recommendation Recommendation, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".analysis.Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrAppointmentID, appointmentID)

	body, err := json.Marshal(generateRequest{
		ReferenceID:   appointmentID,
		TranscriptURL: transcriptURL,
	})
	if err != nil {
		return recommendation, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	url := c.config.External.Analysis.BaseURL + "/v1/recommendations"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return recommendation, fmt.Errorf("failed to build analysis request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAPIKey, c.config.External.Analysis.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("appointmentID", appointmentID).Msg("analysis backend unreachable")

		return recommendation, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		log.Error().Int("status", resp.StatusCode).Str("appointmentID", appointmentID).Msg("analysis backend failed")

		return recommendation, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return recommendation, fmt.Errorf("analysis backend returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&recommendation); err != nil {
		return recommendation, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	return recommendation, nil
}
