package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/internal/app/service/payment"
	"github.com/lumipay/pixbridge/pkg/types"
)

type stubManager struct {
	createReq *payment.CreateRequest
	createRes *payment.CreateResult
	createErr error
	statusQ   *payment.StatusQuery
	statusRes *payment.StatusResult
	statusErr error
	updateReq *payment.StatusUpdateRequest
	updateOK  bool
	updateErr error
}

func (s *stubManager) CreateTransaction(_ context.Context, req *payment.CreateRequest) (*payment.CreateResult, error) {
	s.createReq = req
	return s.createRes, s.createErr
}

func (s *stubManager) GetStatus(_ context.Context, q *payment.StatusQuery) (*payment.StatusResult, error) {
	s.statusQ = q
	return s.statusRes, s.statusErr
}

func (s *stubManager) ApplyStatusUpdate(_ context.Context, req *payment.StatusUpdateRequest) (bool, error) {
	s.updateReq = req
	return s.updateOK, s.updateErr
}

func newPaymentRouter(mgr payment.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterPaymentRoutes(r.Group("/api/v1"), mgr, zap.NewNop().Sugar())
	return r
}

func TestApiCreatePayment_StringAmount(t *testing.T) {
	mgr := &stubManager{createRes: &payment.CreateResult{
		TransactionID: "tx_abc",
		ExternalID:    "pix_1",
		Amount:        decimal.RequireFromString("37.90"),
		Status:        types.StatusPending,
		PixPayload:    "00020126...6304ABCD",
	}}
	r := newPaymentRouter(mgr)

	body, _ := json.Marshal(map[string]any{"value": "37,90", "name": "Maria", "cpf": "111.444.777-35"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"tx_abc"`)
	require.Contains(t, w.Body.String(), `"qr_code_data":"00020126...6304ABCD"`)
	require.True(t, mgr.createReq.Amount.Equal(decimal.RequireFromString("37.90")))
	require.Equal(t, "Maria", mgr.createReq.Customer.Name)
}

func TestApiCreatePayment_NumericAmountAndDefaults(t *testing.T) {
	mgr := &stubManager{createRes: &payment.CreateResult{TransactionID: "tx_1", Status: types.StatusPending}}
	r := newPaymentRouter(mgr)

	body, _ := json.Marshal(map[string]any{"value": 25.5})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mgr.createReq.Amount.Equal(decimal.NewFromFloat(25.5)))
	require.Equal(t, "Cliente", mgr.createReq.Customer.Name)
	require.Equal(t, "cliente@exemplo.com", mgr.createReq.Customer.Email)
}

func TestApiCreatePayment_MissingValue(t *testing.T) {
	mgr := &stubManager{}
	r := newPaymentRouter(mgr)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader([]byte(`{"name":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
	require.Nil(t, mgr.createReq)
}

func TestApiCreatePayment_AmountTooSmall(t *testing.T) {
	mgr := &stubManager{createErr: payment.ErrAmountTooSmall}
	r := newPaymentRouter(mgr)

	body, _ := json.Marshal(map[string]any{"value": "0,00"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
}

func TestApiPaymentStatus_ForwardsQuery(t *testing.T) {
	mgr := &stubManager{statusRes: &payment.StatusResult{
		Status:        types.StatusPaidAlias,
		TransactionID: "tx_1",
		Provenance:    types.ProvenanceLocal,
	}}
	r := newPaymentRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/status?transaction_id=tx_1&force_check=true", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"paid"`)
	require.Contains(t, w.Body.String(), `"source":"local"`)
	require.Equal(t, "tx_1", mgr.statusQ.TransactionID)
	require.True(t, mgr.statusQ.ForceCheck)
}

func TestApiPaymentStatus_NotFound(t *testing.T) {
	mgr := &stubManager{statusErr: payment.ErrNotFound}
	r := newPaymentRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/status?external_id=pix_missing", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40400`)
	require.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestApiPaymentStatus_MissingIdentifiers(t *testing.T) {
	mgr := &stubManager{statusErr: payment.ErrInvalidQuery}
	r := newPaymentRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/status", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
}
