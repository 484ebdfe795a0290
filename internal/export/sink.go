package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cookjwelch/golf-market-explorer/internal/domain"
	"github.com/cookjwelch/golf-market-explorer/internal/observability"
)

// Sink persists a scored county snapshot.
type Sink interface {
	Write(ctx context.Context, counties []domain.ScoredCounty) error
	Close() error
}

// FileSink writes snapshots to a CSV file, creating parent directories as
// needed. Each Write replaces the file.
type FileSink struct {
	path    string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFileSink creates a FileSink targeting path. metrics may be nil.
func NewFileSink(path string, logger *slog.Logger, metrics *observability.Metrics) *FileSink {
	return &FileSink{path: path, logger: logger, metrics: metrics}
}

func (s *FileSink) Write(_ context.Context, counties []domain.ScoredCounty) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, counties); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.ExportRows.WithLabelValues("csv").Add(float64(len(counties)))
	}
	s.logger.Info("export written", "path", s.path, "rows", len(counties))
	return nil
}

func (s *FileSink) Close() error { return nil }
