package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumipay/pixbridge/internal/app/service/statistics"
	"github.com/lumipay/pixbridge/pkg/response"
)

// @Summary      Ledger summary
// @Description  Aggregated record count and amount per status.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.APIResponse[statistics.Summary]
// @Router       /api/v1/admin/summary [get]
func ApiLedgerSummary(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(stats.Summarize(c.Request.Context())))
	}
}

func RegisterAdminRoutes(r gin.IRouter, stats *statistics.Service) {
	r.GET("/summary", ApiLedgerSummary(stats))
}
