package mock

import (
	"context"

	"github.com/aliikhatami94/infradocs"
)

var _ infradocs.StructureService = (*StructureService)(nil)

// StructureService is a mock implementation of infradocs.StructureService.
type StructureService struct {
	BuildStructureFn     func(ctx context.Context, src infradocs.Source) (*infradocs.DocsStructure, error)
	BuildAllStructuresFn func(ctx context.Context) ([]*infradocs.DocsStructure, error)
}

func (s *StructureService) BuildStructure(ctx context.Context, src infradocs.Source) (*infradocs.DocsStructure, error) {
	return s.BuildStructureFn(ctx, src)
}

func (s *StructureService) BuildAllStructures(ctx context.Context) ([]*infradocs.DocsStructure, error) {
	return s.BuildAllStructuresFn(ctx)
}
