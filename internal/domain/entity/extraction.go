package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionRequest identifies one 3-hour MP4 segment in the HPWREN
// archive and the object-storage prefix its frames should land under.
// It lives only for the duration of a single request.
type ExtractionRequest struct {
	HostName  string `json:"hostName"`
	CameraID  string `json:"cameraID"`
	YearDir   string `json:"yearDir,omitempty"`
	DateDir   string `json:"dateDir"`
	QNum      int    `json:"qNum"`
	UploadDir string `json:"uploadDir"`
}

// ExtractionCompletedEvent is published after a segment has been split
// and its frames uploaded. Downstream dataset jobs consume these to
// pick up newly archived frames.
type ExtractionCompletedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	CameraID    string    `json:"camera_id"`
	DateDir     string    `json:"date_dir"`
	QNum        int       `json:"q_num"`
	UploadDir   string    `json:"upload_dir"`
	FrameCount  int       `json:"frame_count"`
	Uploaded    []string  `json:"uploaded"`
	CompletedAt time.Time `json:"completed_at"`
}
