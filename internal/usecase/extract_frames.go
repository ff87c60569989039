package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/open-climate-tech/firecam/internal/domain/entity"
	"github.com/open-climate-tech/firecam/internal/domain/port"
	"github.com/open-climate-tech/firecam/internal/hpwren"
	"github.com/open-climate-tech/firecam/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Terminal pipeline failures, one per stage. The HTTP layer maps each
// to its client-facing message.
var (
	ErrMissingParams = errors.New("missing request parameters")
	ErrDownload      = errors.New("could not download archive segment")
	ErrDecode        = errors.New("could not decode archive segment")
	ErrUpload        = errors.New("could not upload frames")
)

// ExtractFramesUseCase runs the download → decode → upload pipeline
// for one archive segment. Stages are strictly sequential; the only
// parallelism is the bounded upload batch.
type ExtractFramesUseCase struct {
	fetcher   port.ArchiveFetcher
	splitter  port.FrameSplitter
	storage   port.ObjectStorage
	publisher port.EventPublisher // nil disables event publishing
	logger    *zap.Logger
	tempDir   string
	batchSize int
}

type ExtractFramesConfig struct {
	TempDir   string
	BatchSize int
}

func NewExtractFramesUseCase(
	fetcher port.ArchiveFetcher,
	splitter port.FrameSplitter,
	storage port.ObjectStorage,
	publisher port.EventPublisher,
	logger *zap.Logger,
	cfg ExtractFramesConfig,
) *ExtractFramesUseCase {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 8
	}
	return &ExtractFramesUseCase{
		fetcher:   fetcher,
		splitter:  splitter,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
		tempDir:   cfg.TempDir,
		batchSize: batch,
	}
}

// Execute returns the object keys of the uploaded frames in frame
// order. Frames whose individual upload failed are logged and left out
// of the result without failing the run.
func (uc *ExtractFramesUseCase) Execute(ctx context.Context, req *entity.ExtractionRequest) ([]string, error) {
	if req.HostName == "" || req.CameraID == "" || req.DateDir == "" || req.QNum <= 0 {
		return nil, ErrMissingParams
	}

	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "ExtractFramesUseCase.Execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("camera_id", req.CameraID),
		attribute.String("date_dir", req.DateDir),
		attribute.Int("q_num", req.QNum),
	)

	metrics.ActiveExtractions.Inc()
	defer metrics.ActiveExtractions.Dec()

	log := uc.logger.With(
		zap.String("camera_id", req.CameraID),
		zap.String("date_dir", req.DateDir),
		zap.Int("q_num", req.QNum),
	)

	workDir := filepath.Join(uc.tempDir, uuid.New().String())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		log.Error("failed to create workdir", zap.Error(err))
		return nil, fmt.Errorf("create workdir: %w", ErrDownload)
	}
	defer os.RemoveAll(workDir)

	// Download
	dlStart := time.Now()
	ctxDl, spanDl := tracer.Start(ctx, "download_segment")
	archiveURL := hpwren.BuildArchiveURL(req.HostName, req.CameraID, req.YearDir, req.DateDir, req.QNum)
	videoPath := filepath.Join(workDir, fmt.Sprintf("Q%d.mp4", req.QNum))
	err := uc.fetcher.FetchToFile(ctxDl, archiveURL, videoPath)
	spanDl.End()
	if err != nil {
		log.Error("segment download failed", zap.String("url", archiveURL), zap.Error(err))
		metrics.ExtractionsTotal.WithLabelValues("download_failed").Inc()
		return nil, fmt.Errorf("%s: %w", archiveURL, ErrDownload)
	}
	metrics.ExtractionStageDuration.WithLabelValues("download").Observe(time.Since(dlStart).Seconds())

	// Decode
	exStart := time.Now()
	ctxEx, spanEx := tracer.Start(ctx, "split_frames")
	frameCount, err := uc.splitter.SplitFrames(ctxEx, videoPath, workDir)
	spanEx.End()
	if err != nil {
		log.Error("frame split failed", zap.Error(err))
		metrics.ExtractionsTotal.WithLabelValues("decode_failed").Inc()
		return nil, fmt.Errorf("split %s: %w", filepath.Base(videoPath), ErrDecode)
	}
	metrics.ExtractionStageDuration.WithLabelValues("decode").Observe(time.Since(exStart).Seconds())

	// Rename & upload
	upStart := time.Now()
	ctxUp, spanUp := tracer.Start(ctx, "upload_frames")
	uploaded, err := uc.uploadFrames(ctxUp, req, workDir, log)
	spanUp.End()
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("upload_failed").Inc()
		return nil, err
	}
	metrics.ExtractionStageDuration.WithLabelValues("upload").Observe(time.Since(upStart).Seconds())

	log.Info("extraction completed",
		zap.Int("frame_count", frameCount),
		zap.Int("uploaded", len(uploaded)),
	)
	metrics.ExtractionsTotal.WithLabelValues("completed").Inc()

	uc.publishCompleted(ctx, req, frameCount, uploaded, log)

	return uploaded, nil
}

// uploadFrames names and uploads the extracted JPEGs in batches of
// batchSize concurrent transfers. Each batch is awaited in full before
// the next starts. A failure while staging an upload (bad upload
// destination, unreadable frame name) aborts; a failure inside an
// in-flight upload only drops that frame from the result.
func (uc *ExtractFramesUseCase) uploadFrames(
	ctx context.Context,
	req *entity.ExtractionRequest,
	workDir string,
	log *zap.Logger,
) ([]string, error) {
	bucket, prefix, ok := hpwren.ParseStoragePath(req.UploadDir)
	if !ok {
		log.Error("uploadDir is not a storage path", zap.String("upload_dir", req.UploadDir))
		return nil, fmt.Errorf("parse upload dir %q: %w", req.UploadDir, ErrUpload)
	}

	frames, err := listFrameFiles(workDir)
	if err != nil {
		log.Error("failed to list frame files", zap.Error(err))
		return nil, fmt.Errorf("list frames: %w", ErrUpload)
	}

	uploaded := make([]string, 0, len(frames))
	for start := 0; start < len(frames); start += uc.batchSize {
		end := start + uc.batchSize
		if end > len(frames) {
			end = len(frames)
		}

		results := make([]string, end-start)
		var wg sync.WaitGroup
		for j, name := range frames[start:end] {
			objectName, err := hpwren.FrameObjectName(req.CameraID, req.DateDir, req.QNum, start+j)
			if err != nil {
				wg.Wait()
				log.Error("failed to name frame", zap.Error(err))
				return nil, fmt.Errorf("name frame %d: %w", start+j, ErrUpload)
			}
			key := prefix + "/" + objectName
			localPath := filepath.Join(workDir, name)

			wg.Add(1)
			go func(idx int, localPath, key string) {
				defer wg.Done()
				finalKey, err := uc.storage.UploadFile(ctx, bucket, key, localPath)
				if err != nil {
					log.Warn("frame upload failed, dropping from result",
						zap.String("key", key),
						zap.Error(err),
					)
					metrics.FrameUploadFailuresTotal.Inc()
					return
				}
				results[idx] = finalKey
			}(j, localPath, key)
		}
		wg.Wait()

		for _, key := range results {
			if key != "" {
				uploaded = append(uploaded, key)
				metrics.FramesUploadedTotal.Inc()
			}
		}
	}

	return uploaded, nil
}

// listFrameFiles returns the .jpg files in dir sorted
// lexicographically, which equals frame sequence order thanks to the
// splitter's zero-padded names. The downloaded .mp4 is skipped.
func listFrameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var frames []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jpg") {
			continue
		}
		frames = append(frames, e.Name())
	}
	sort.Strings(frames)
	return frames, nil
}

func (uc *ExtractFramesUseCase) publishCompleted(
	ctx context.Context,
	req *entity.ExtractionRequest,
	frameCount int,
	uploaded []string,
	log *zap.Logger,
) {
	if uc.publisher == nil {
		return
	}

	event := entity.ExtractionCompletedEvent{
		EventID:     uuid.New(),
		CameraID:    req.CameraID,
		DateDir:     req.DateDir,
		QNum:        req.QNum,
		UploadDir:   req.UploadDir,
		FrameCount:  frameCount,
		Uploaded:    uploaded,
		CompletedAt: time.Now().UTC(),
	}
	data, _ := json.Marshal(event)
	if err := uc.publisher.PublishExtractionCompleted(ctx, data); err != nil {
		log.Warn("failed to publish extraction event", zap.Error(err))
	}
}
