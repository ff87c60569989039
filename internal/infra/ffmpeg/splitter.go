package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/open-climate-tech/firecam/internal/hpwren"
	"go.uber.org/zap"
)

// Splitter shells out to ffmpeg to decompose an archive MP4 into one
// JPEG per frame. Output names are img00001.jpg, img00002.jpg, ... so
// that lexicographic order equals frame order (see hpwren.FramePadWidth).
type Splitter struct {
	logger *zap.Logger
}

func NewSplitter(logger *zap.Logger) *Splitter {
	return &Splitter{logger: logger}
}

func (s *Splitter) SplitFrames(ctx context.Context, videoPath string, outputDir string) (int, error) {
	framePattern := filepath.Join(outputDir, fmt.Sprintf("img%%0%dd.jpg", hpwren.FramePadWidth))

	// mjpeg with qscale 0 keeps each frame at full quality.
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vcodec", "mjpeg",
		"-qscale", "0",
		"-y",
		framePattern,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffmpeg error: %w, output: %s", err, string(output))
	}

	frames, err := filepath.Glob(filepath.Join(outputDir, "*.jpg"))
	if err != nil {
		return 0, fmt.Errorf("glob frames: %w", err)
	}
	if len(frames) == 0 {
		return 0, fmt.Errorf("no frames extracted from %s", filepath.Base(videoPath))
	}
	if len(frames) > hpwren.MaxFramesPerSegment {
		return 0, fmt.Errorf("%d frames exceed the padded-name ordering bound %d", len(frames), hpwren.MaxFramesPerSegment)
	}

	s.logger.Info("frames extracted",
		zap.Int("count", len(frames)),
		zap.String("video", filepath.Base(videoPath)),
	)

	return len(frames), nil
}
