package port

import (
	"context"

	"github.com/open-climate-tech/firecam/internal/domain/entity"
)

type LabelRepository interface {
	InsertBBox(ctx context.Context, label *entity.BBoxLabel) error
}
