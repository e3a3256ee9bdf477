package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/internal/app/service/auditlog"
	"github.com/lumipay/pixbridge/internal/app/service/payment"
	"github.com/lumipay/pixbridge/pkg/config"
)

func newWebhookRouter(t *testing.T, mgr payment.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	audit := auditlog.New(&config.Config{Audit: config.AuditConfig{Dir: t.TempDir()}}, zap.NewNop().Sugar())
	r := gin.New()
	RegisterWebhookRoutes(r.Group("/api/v1/webhooks"), mgr, audit, zap.NewNop().Sugar())
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/genesys", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiGenesysWebhook_AppliesUpdate(t *testing.T) {
	mgr := &stubManager{updateOK: true}
	r := newWebhookRouter(t, mgr)

	w := postWebhook(r, `{"id":"tx_1","status":"AUTHORIZED","external_id":"pix_1","total_amount":37.9,"payment_method":"PIX"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":0`)
	require.Contains(t, w.Body.String(), `"updated":true`)

	require.Equal(t, "tx_1", mgr.updateReq.TransactionID)
	require.Equal(t, "pix_1", mgr.updateReq.ExternalID)
	require.Equal(t, "AUTHORIZED", mgr.updateReq.Status)
	require.Equal(t, "PIX", mgr.updateReq.Method)
	require.NotNil(t, mgr.updateReq.Amount)
	require.True(t, mgr.updateReq.Amount.Equal(decimal.NewFromFloat(37.9)))
}

func TestApiGenesysWebhook_NoMatchStillAcknowledged(t *testing.T) {
	mgr := &stubManager{updateOK: false}
	r := newWebhookRouter(t, mgr)

	w := postWebhook(r, `{"id":"tx_unknown","status":"FAILED"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":20000`)
	require.Contains(t, w.Body.String(), "transaction not found in local records")
	require.Nil(t, mgr.updateReq.Amount)
}

func TestApiGenesysWebhook_IncompletePayload(t *testing.T) {
	mgr := &stubManager{}
	r := newWebhookRouter(t, mgr)

	w := postWebhook(r, `{"id":"tx_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
	require.Contains(t, w.Body.String(), "incomplete webhook data")
	require.Nil(t, mgr.updateReq)
}

func TestApiGenesysWebhook_MalformedJSON(t *testing.T) {
	mgr := &stubManager{}
	r := newWebhookRouter(t, mgr)

	w := postWebhook(r, `{"id": "tx_1", "status":`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
	require.Nil(t, mgr.updateReq)
}
