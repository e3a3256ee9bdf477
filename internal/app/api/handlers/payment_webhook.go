package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/lumipay/pixbridge/internal/app/service/auditlog"
	"github.com/lumipay/pixbridge/internal/app/service/payment"
	"github.com/lumipay/pixbridge/pkg/logctx"
	"github.com/lumipay/pixbridge/pkg/metrics"
	"github.com/lumipay/pixbridge/pkg/response"
	"go.uber.org/zap"
)

type genesysWebhookRequest struct {
	ID            string           `json:"id"`
	Status        string           `json:"status"`
	ExternalID    string           `json:"external_id"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
	PaymentMethod string           `json:"payment_method"`
}

type webhookResult struct {
	Updated       bool   `json:"updated"`
	TransactionID string `json:"transaction_id,omitempty"`
	ExternalID    string `json:"external_id,omitempty"`
}

// @Summary      Genesys webhook
// @Description  Receives payment status notifications from the gateway. Always answers HTTP 200 so the gateway does not retry on "not found".
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body genesysWebhookRequest true "Status notification"
// @Success      200  {object}  response.APIResponse[webhookResult]
// @Router       /api/v1/webhooks/genesys [post]
func ApiGenesysWebhook(mgr payment.Manager, audit *auditlog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		audit.Save(c.Request.Context(), auditlog.StreamWebhooks, map[string]any{
			"payload":   json.RawMessage(raw),
			"client_ip": c.ClientIP(),
		})

		var req genesysWebhookRequest
		if err := json.Unmarshal(raw, &req); err != nil || req.ID == "" || req.Status == "" {
			metrics.WebhookUpdates.WithLabelValues("invalid").Inc()
			logctx.FromGin(c, log).Warnw("webhook_invalid_payload", "body", string(raw))
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "incomplete webhook data"))
			return
		}

		updated, err := mgr.ApplyStatusUpdate(c.Request.Context(), &payment.StatusUpdateRequest{
			TransactionID: req.ID,
			ExternalID:    req.ExternalID,
			Status:        req.Status,
			Amount:        req.TotalAmount,
			Method:        req.PaymentMethod,
		})
		result := webhookResult{Updated: updated, TransactionID: req.ID, ExternalID: req.ExternalID}
		switch {
		case err != nil:
			metrics.WebhookUpdates.WithLabelValues("error").Inc()
			logctx.FromGin(c, log).Errorw("webhook_update_failed", "error", err.Error())
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
		case !updated:
			// non-fatal: acknowledged so the gateway will not retry
			metrics.WebhookUpdates.WithLabelValues("no_match").Inc()
			c.JSON(http.StatusOK, response.WarnT("transaction not found in local records", result))
		default:
			metrics.WebhookUpdates.WithLabelValues("updated").Inc()
			c.JSON(http.StatusOK, response.OKT(result))
		}
	}
}

func RegisterWebhookRoutes(r gin.IRouter, mgr payment.Manager, audit *auditlog.Service, log *zap.SugaredLogger) {
	r.POST("/genesys", ApiGenesysWebhook(mgr, audit, log))
}
