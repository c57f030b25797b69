package registry

//go:generate go run go.uber.org/mock/mockgen -source=./registry.go -destination=./mocks/registry_mock.go -package=mocks

import (
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

const otelAttrApplicationID = "application_id"

type applicationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Client talks to the visa-application registry that owns application
// process records.
type Client interface {
	ApplicationExists(ctx context.Context, applicationID string) (bool, error)
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
			Timeout: time.Duration(cfg.External.Registry.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (c *clientImpl) ApplicationExists(ctx context.Context, applicationID string) (exists bool, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".registry.ApplicationExists")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrApplicationID, applicationID)

	url := fmt.Sprintf("%s/v1/applications/%s", c.config.External.Registry.BaseURL, applicationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build registry request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAPIKey, c.config.External.Registry.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("applicationID", applicationID).Msg("application registry unreachable")

		return false, fmt.Errorf("failed to call application registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("applicationID", applicationID).Msg("application registry failed")

		return false, fmt.Errorf("application registry returned status %d", resp.StatusCode)
	}

	var application applicationResponse
	if err = json.NewDecoder(resp.Body).Decode(&application); err != nil {
		return false, fmt.Errorf("failed to decode registry response: %w", err)
	}

	return application.ID != constant.Empty, nil
}
