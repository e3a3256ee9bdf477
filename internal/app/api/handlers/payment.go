package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/lumipay/pixbridge/internal/app/service/payment"
	"github.com/lumipay/pixbridge/pkg/logctx"
	"github.com/lumipay/pixbridge/pkg/response"
	"github.com/lumipay/pixbridge/pkg/tool"
	"github.com/lumipay/pixbridge/pkg/types"
	"go.uber.org/zap"
)

type createPaymentRequest struct {
	// Value accepts a JSON number or a Brazilian-format string ("37,90").
	Value any    `json:"value"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type createPaymentResponse struct {
	TransactionID string              `json:"transaction_id"`
	ExternalID    string              `json:"external_id"`
	Amount        decimal.Decimal     `json:"amount"`
	Status        types.PaymentStatus `json:"status"`
	PixPayload    string              `json:"pix_payload"`
	// QRCodeData duplicates the payload under the key the frontend uses
	// to render the QR code.
	QRCodeData string `json:"qr_code_data"`
}

func (r *createPaymentRequest) amount() (decimal.Decimal, error) {
	switch v := r.Value.(type) {
	case string:
		return tool.ParseAmount(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Zero, errors.New("value not provided")
	}
}

// @Summary      Create PIX payment
// @Description  Registers a PIX charge with the gateway and records it in the ledger.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body createPaymentRequest true "Payment creation request"
// @Success      200  {object}  response.APIResponse[createPaymentResponse]
// @Router       /api/v1/payments [post]
func ApiCreatePayment(mgr payment.Manager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		amount, err := req.amount()
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := mgr.CreateTransaction(c.Request.Context(), &payment.CreateRequest{
			Amount: amount,
			Customer: types.Customer{
				Name:     defaultIfEmpty(req.Name, "Cliente"),
				Document: req.CPF,
				Email:    defaultIfEmpty(req.Email, "cliente@exemplo.com"),
				Phone:    defaultIfEmpty(req.Phone, "11999999999"),
			},
			ClientIP: c.ClientIP(),
		})
		if err != nil {
			if errors.Is(err, payment.ErrAmountTooSmall) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			logctx.FromGin(c, log).Errorw("create_payment_failed", "error", err.Error())
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		c.JSON(http.StatusOK, response.OKT(createPaymentResponse{
			TransactionID: res.TransactionID,
			ExternalID:    res.ExternalID,
			Amount:        res.Amount,
			Status:        res.Status,
			PixPayload:    res.PixPayload,
			QRCodeData:    res.PixPayload,
		}))
	}
}

// @Summary      Query payment status
// @Description  Looks up a transaction by either identifier; force_check asks for a remote re-check while the local status is PENDING.
// @Tags         Payment
// @Produce      json
// @Param        transaction_id query string false "Gateway transaction id"
// @Param        external_id query string false "Ledger external id"
// @Param        force_check query bool false "Force a remote re-check"
// @Success      200  {object}  response.APIResponse[payment.StatusResult]
// @Router       /api/v1/payments/status [get]
func ApiPaymentStatus(mgr payment.Manager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := &payment.StatusQuery{
			TransactionID: c.Query("transaction_id"),
			ExternalID:    c.Query("external_id"),
			ForceCheck:    c.Query("force_check") == "true" || c.Query("force_check") == "1",
		}

		res, err := mgr.GetStatus(c.Request.Context(), q)
		if err != nil {
			switch {
			case errors.Is(err, payment.ErrInvalidQuery):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			case errors.Is(err, payment.ErrNotFound):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "NOT_FOUND"))
			default:
				logctx.FromGin(c, log).Errorw("payment_status_failed", "error", err.Error())
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			}
			return
		}

		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func defaultIfEmpty(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func RegisterPaymentRoutes(r gin.IRouter, mgr payment.Manager, log *zap.SugaredLogger) {
	r.POST("/payments", ApiCreatePayment(mgr, log))
	r.GET("/payments/status", ApiPaymentStatus(mgr, log))
}
