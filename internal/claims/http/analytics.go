package http

import (
	"net/http"

	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/pkg/claimsdk"
	"github.com/aussiebroadwan/claims/pkg/httpx"
)

// AnalyticsHandler serves spending summaries.
type AnalyticsHandler struct {
	Analytics *service.AnalyticsService
}

// ServeHTTP godoc
//
//	@Summary		Spending summary
//	@Description	Totals by category and status over the expenses the caller can see. Amounts are decimal strings.
//	@Tags			Analytics
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	claimsdk.Analytics
//	@Failure		401	{object}	claimsdk.ErrorResponse	"Missing or invalid token"
//	@Router			/v1/analytics [get]
func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	summary, err := h.Analytics.Summarize(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAnalytics(summary))
}
