package port

import "context"

// FrameSplitter turns a video file into one JPEG per frame inside
// outputDir, using a zero-padded sequential naming scheme so that
// lexicographic order equals frame order. Returns the frame count.
type FrameSplitter interface {
	SplitFrames(ctx context.Context, videoPath, outputDir string) (int, error)
}
