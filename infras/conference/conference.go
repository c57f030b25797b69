package conference

//go:generate go run go.uber.org/mock/mockgen -source=./conference.go -destination=./mocks/conference_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"visaprep/config"
	"visaprep/infras/otel"
	"visaprep/shared/constant"

	"github.com/rs/zerolog/log"
)

const otelAttrAppointmentID = "appointment_id"

// Room is the virtual meeting room provisioned for one simulation session.
type Room struct {
	ID         string `json:"id"`
	JoinURL    string `json:"join_url"`
	HostURL    string `json:"host_url"`
	Passcode   string `json:"passcode,omitempty"`
	Provider   string `json:"provider,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	RecordCall bool   `json:"record_call"`
}

type createRoomRequest struct {
	ReferenceID string `json:"reference_id"`
	Record      bool   `json:"record"`
}

// Client talks to the video-conference provider.
type Client interface {
	CreateRoom(ctx context.Context, appointmentID string) (Room, error)
	CloseRoom(ctx context.Context, roomID string) error
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
			Timeout: time.Duration(cfg.External.Conference.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (c *clientImpl) CreateRoom(ctx context.Context, appointmentID string) (room Room, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".conference.CreateRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrAppointmentID, appointmentID)

	body, err := json.Marshal(createRoomRequest{
		ReferenceID: appointmentID,
		Record:      true,
	})
	if err != nil {
		return room, fmt.Errorf("failed to marshal create room request: %w", err)
	}

	url := c.config.External.Conference.BaseURL + "/v1/rooms"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return room, fmt.Errorf("failed to build create room request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAPIKey, c.config.External.Conference.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("appointmentID", appointmentID).Msg("conference provider unreachable")

		return room, fmt.Errorf("failed to call conference provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("appointmentID", appointmentID).Msg("conference provider rejected room creation")

		return room, fmt.Errorf("conference provider returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return room, fmt.Errorf("failed to decode create room response: %w", err)
	}

	return room, nil
}

func (c *clientImpl) CloseRoom(ctx context.Context, roomID string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".conference.CloseRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	url := fmt.Sprintf("%s/v1/rooms/%s", c.config.External.Conference.BaseURL, roomID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build close room request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAPIKey, c.config.External.Conference.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("conference provider unreachable")

		return fmt.Errorf("failed to call conference provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		log.Error().Int("status", resp.StatusCode).Str("roomID", roomID).Msg("conference provider rejected room close")

		return fmt.Errorf("conference provider returned status %d", resp.StatusCode)
	}

	return nil
}
