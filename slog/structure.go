package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aliikhatami94/infradocs"
)

// Ensure LoggingStructureService implements infradocs.StructureService.
var _ infradocs.StructureService = (*LoggingStructureService)(nil)

// LoggingStructureService wraps a StructureService with logging.
type LoggingStructureService struct {
	next   infradocs.StructureService
	logger *slog.Logger
}

// NewLoggingStructureService creates a new LoggingStructureService.
func NewLoggingStructureService(next infradocs.StructureService, logger *slog.Logger) *LoggingStructureService {
	return &LoggingStructureService{next: next, logger: logger}
}

// BuildStructure delegates to the wrapped service and logs the tree size.
func (s *LoggingStructureService) BuildStructure(ctx context.Context, src infradocs.Source) (st *infradocs.DocsStructure, err error) {
	defer func(begin time.Time) {
		files := 0
		if st != nil {
			files = len(st.Files())
		}
		s.logger.Info("build structure",
			"package", string(src.Package),
			"files", files,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BuildStructure(ctx, src)
}

// BuildAllStructures delegates to the wrapped service and logs the totals.
func (s *LoggingStructureService) BuildAllStructures(ctx context.Context) (all []*infradocs.DocsStructure, err error) {
	defer func(begin time.Time) {
		files := 0
		for _, st := range all {
			files += len(st.Files())
		}
		s.logger.Info("build all structures",
			"packages", len(all),
			"files", files,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BuildAllStructures(ctx)
}
