package quota

import (
	"net/http"
	"visaprep/infras/otel"
	"visaprep/internal/domains/quota/service"
	"visaprep/shared/constant"
	"visaprep/shared/failure"
	"visaprep/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Quota
	otel    otel.Otel
}

func New(service service.Quota, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/quota", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyQuota)
		routerGroup.Get("/{id}", handler.GetClientQuota)
	})
}

// GetMyQuota shows the caller's simulation quota standing.
// @Summary Get my quota
// @Description Allowance, used count and remaining availability for the authenticated client.
// @Tags Quota
// @Produce json
// @Success 200 {object} response.Data[dto.QuotaStatusResponse] "Quota standing"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quota [get]
// @Security BearerAuth
func (handler *Handler) GetMyQuota(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyQuota")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	status, err := handler.service.CheckAvailable(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check quota")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

// GetClientQuota shows another client's quota standing; advisor/admin view.
// @Summary Get a client's quota
// @Tags Quota
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} response.Data[dto.QuotaStatusResponse] "Quota standing"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quota/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetClientQuota(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClientQuota")
	defer scope.End()

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleAdvisor && role != constant.RoleAdmin {
		response.WithError(w, failure.ForbiddenError)

		return
	}

	clientID := chi.URLParam(r, constant.RequestParamID)

	status, err := handler.service.CheckAvailable(ctx, clientID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check quota")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
