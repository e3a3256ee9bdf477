// Package auditlog writes JSONL side logs for gateway requests, webhook
// deliveries and status queries. Logging is an observability concern
// invoked after the core decision is made: Save is fire-and-forget and
// never sits on the request path.
package auditlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/pkg/config"
	"github.com/lumipay/pixbridge/pkg/logctx"
)

const (
	StreamRequests = "genesys_requests"
	StreamWebhooks = "genesys_webhooks"
	StreamQueries  = "genesys_queries"
)

type Service struct {
	dir string
	log *zap.SugaredLogger

	mu sync.Mutex
}

func New(cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{dir: cfg.Audit.Dir, log: log}
}

// Save asynchronously appends one entry to the named stream. Nil entries
// are ignored; a timestamp is stamped in if absent.
func (s *Service) Save(ctx context.Context, stream string, entry map[string]any) {
	go func() {
		if entry == nil {
			return
		}
		if _, ok := entry["timestamp"]; !ok {
			entry["timestamp"] = time.Now().Format(time.RFC3339)
		}
		line, err := json.Marshal(entry)
		if err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to marshal audit entry: %v", err)
			return
		}
		if err := s.append(stream, line); err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save audit entry: %v", err)
		}
	}()
}

func (s *Service) append(stream string, line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(s.dir, stream+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, werr := f.Write(append(line, '\n'))
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

var Module = fx.Options(
	fx.Provide(New),
)
