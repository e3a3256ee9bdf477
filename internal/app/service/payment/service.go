package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/internal/app/service/auditlog"
	"github.com/lumipay/pixbridge/internal/ledger"
	"github.com/lumipay/pixbridge/internal/platform/genesys"
	"github.com/lumipay/pixbridge/pkg/config"
	"github.com/lumipay/pixbridge/pkg/logctx"
	"github.com/lumipay/pixbridge/pkg/metrics"
	"github.com/lumipay/pixbridge/pkg/tool"
	"github.com/lumipay/pixbridge/pkg/types"
)

const itemTitle = "Pagamento PIX"

var minAmount = decimal.New(1, -2) // 0.01

type Service struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	store *ledger.Store
	gw    Gateway
	audit *auditlog.Service
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, store *ledger.Store, gw Gateway, audit *auditlog.Service) Manager {
	return &Service{cfg: cfg, log: log, store: store, gw: gw, audit: audit}
}

func (s *Service) CreateTransaction(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	if req.Amount.LessThan(minAmount) {
		return nil, ErrAmountTooSmall
	}

	customer := req.Customer
	customer.Document = tool.NormalizeDocument(customer.Document)
	if !tool.IsValidCPF(customer.Document) {
		customer.Document = s.cfg.Payment.FallbackDocument
	}

	externalID := tool.GenerateExternalID()
	gwReq := &genesys.CreateTransactionRequest{
		ExternalID:    externalID,
		TotalAmount:   req.Amount,
		PaymentMethod: s.cfg.Payment.DefaultMethod,
		WebhookURL:    s.cfg.Gateway.WebhookURL,
		Items: []genesys.Item{{
			ID:          "item_1",
			Title:       itemTitle,
			Description: "Pagamento via PIX",
			Price:       req.Amount,
			Quantity:    1,
			IsPhysical:  false,
		}},
		IP:       req.ClientIP,
		Customer: genesys.NewCustomer(customer),
	}

	txn, err := s.gw.CreateTransaction(ctx, gwReq)
	s.audit.Save(ctx, auditlog.StreamRequests, map[string]any{
		"external_id": externalID,
		"amount":      req.Amount,
		"error": func() any {
			if err != nil {
				return err.Error()
			}
			return nil
		}(),
	})
	if err != nil {
		metrics.GatewayCalls.WithLabelValues("create", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	metrics.GatewayCalls.WithLabelValues("create", "ok").Inc()

	status := MapGatewayStatus(txn.Status)
	rec := &ledger.Record{
		TransactionID: txn.ID,
		ExternalID:    externalID,
		Amount:        req.Amount,
		Status:        status,
		Method:        s.cfg.Payment.DefaultMethod,
		CreatedAt:     time.Now().UTC(),
		Customer:      &customer,
	}
	if txn.Pix != nil {
		rec.PixPayload = txn.Pix.Payload
	}
	// some charges settle synchronously; the approval timestamp is owned
	// by whoever first records the APPROVED status
	if status == types.StatusApproved {
		rec.ApprovedAt = lo.ToPtr(rec.CreatedAt)
	}
	if err := s.store.Append(ctx, rec); err != nil {
		return nil, err
	}
	metrics.LedgerRecords.Set(float64(s.store.Len()))

	return &CreateResult{
		TransactionID: txn.ID,
		ExternalID:    externalID,
		Amount:        req.Amount,
		Status:        status,
		PixPayload:    rec.PixPayload,
	}, nil
}

func (s *Service) GetStatus(ctx context.Context, q *StatusQuery) (*StatusResult, error) {
	if q.TransactionID == "" && q.ExternalID == "" {
		return nil, ErrInvalidQuery
	}

	local := s.store.FindByEither(q.TransactionID, q.ExternalID)

	// Consult the gateway only when local data is absent or a force-check
	// finds it still pending. Terminal local statuses are trusted
	// indefinitely; they only regress via an explicit webhook.
	consultRemote := local == nil ||
		(q.ForceCheck && local.StatusOrUnknown() == types.StatusPending)

	if consultRemote {
		if res, err := s.checkRemote(ctx, q, local); err == nil {
			return res, nil
		} else if local == nil {
			if errors.Is(err, genesys.ErrTransactionNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		} else {
			// remote failed but we hold prior state; serve that
			logctx.FromCtx(ctx, s.log).Warnw("status_remote_check_failed",
				"transaction_id", q.TransactionID, "external_id", q.ExternalID, "error", err.Error())
		}
	}

	return localResult(local), nil
}

func (s *Service) checkRemote(ctx context.Context, q *StatusQuery, local *ledger.Record) (*StatusResult, error) {
	id := lo.Ternary(q.TransactionID != "", q.TransactionID, q.ExternalID)

	txn, err := s.gw.GetTransaction(ctx, id)
	s.audit.Save(ctx, auditlog.StreamQueries, map[string]any{
		"action":         "remote_check",
		"transaction_id": id,
		"error": func() any {
			if err != nil {
				return err.Error()
			}
			return nil
		}(),
	})
	if err != nil {
		metrics.GatewayCalls.WithLabelValues("get", "error").Inc()
		return nil, err
	}
	metrics.GatewayCalls.WithLabelValues("get", "ok").Inc()

	status := MapGatewayStatus(txn.Status)
	upd := ledger.StatusUpdate{
		Status: status,
		Amount: txn.EffectiveAmount(),
		Method: txn.PaymentMethod,
	}
	transactionID := lo.CoalesceOrEmpty(q.TransactionID, txn.ID)
	externalID := lo.CoalesceOrEmpty(q.ExternalID, txn.ExternalID)
	if _, err := s.store.ApplyUpdate(ctx, transactionID, externalID, upd); err != nil {
		// the remote answer is still authoritative for the caller
		logctx.FromCtx(ctx, s.log).Errorw("status_persist_failed", "error", err.Error())
	}

	res := &StatusResult{
		Status:        string(status),
		TransactionID: txn.ID,
		ExternalID:    lo.CoalesceOrEmpty(txn.ExternalID, q.ExternalID),
		Amount:        txn.EffectiveAmount(),
		CreatedAt:     txn.CreatedAt,
		Method:        lo.CoalesceOrEmpty(txn.PaymentMethod, s.cfg.Payment.DefaultMethod),
		Provenance:    types.ProvenanceRemote,
	}
	if local != nil {
		res.PixPayload = local.PixPayload
	}
	return res, nil
}

func localResult(rec *ledger.Record) *StatusResult {
	amount := rec.Amount
	return &StatusResult{
		Status:        DisplayStatus(rec.StatusOrUnknown()),
		TransactionID: rec.TransactionID,
		ExternalID:    rec.ExternalID,
		Amount:        &amount,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
		Method:        rec.Method,
		PixPayload:    rec.PixPayload,
		Provenance:    types.ProvenanceLocal,
	}
}

func (s *Service) ApplyStatusUpdate(ctx context.Context, req *StatusUpdateRequest) (bool, error) {
	status := MapGatewayStatus(req.Status)

	updated, err := s.store.ApplyUpdate(ctx, req.TransactionID, req.ExternalID, ledger.StatusUpdate{
		Status: status,
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		return false, err
	}
	if !updated {
		logctx.FromCtx(ctx, s.log).Warnw("status_update_no_match",
			"transaction_id", req.TransactionID, "external_id", req.ExternalID, "status", string(status))
	}
	return updated, nil
}
