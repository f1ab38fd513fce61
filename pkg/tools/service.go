package tools

import (
	"context"
	"log/slog"

	"github.com/NERVsystems/rapidmcp/pkg/myrapid"
)

// Fetcher performs a single GET and reports whether usable JSON came back.
// *myrapid.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (any, bool)
}

// Service implements the four Rapid KL lookups on top of a Fetcher. Each
// method returns the text shown to the caller and never fails.
type Service struct {
	cfg     myrapid.Config
	fetcher Fetcher
	logger  *slog.Logger
}

// NewService creates a Service that builds URLs from cfg.
func NewService(cfg myrapid.Config, fetcher Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger,
	}
}
