package usecase

import (
	"context"
	"time"

	"github.com/open-climate-tech/firecam/internal/domain/entity"
	"github.com/open-climate-tech/firecam/internal/domain/port"
	"github.com/open-climate-tech/firecam/internal/infra/metrics"
	"go.uber.org/zap"
)

// RecordLabelUseCase persists one bounding-box annotation. There is no
// dedup: resubmitting the same label appends another row.
type RecordLabelUseCase struct {
	repo   port.LabelRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewRecordLabelUseCase(repo port.LabelRepository, logger *zap.Logger) *RecordLabelUseCase {
	return &RecordLabelUseCase{repo: repo, logger: logger, now: time.Now}
}

func (uc *RecordLabelUseCase) Execute(ctx context.Context, label *entity.BBoxLabel) error {
	label.InsertionTime = uc.now().Unix()

	if err := uc.repo.InsertBBox(ctx, label); err != nil {
		uc.logger.Error("failed to insert bbox label",
			zap.String("image", label.ImageName),
			zap.Error(err),
		)
		metrics.LabelsRecordedTotal.WithLabelValues("error").Inc()
		return err
	}

	uc.logger.Info("bbox label recorded",
		zap.String("image", label.ImageName),
		zap.String("user_id", label.UserID),
		zap.Int64("insertion_time", label.InsertionTime),
	)
	metrics.LabelsRecordedTotal.WithLabelValues("recorded").Inc()
	return nil
}
