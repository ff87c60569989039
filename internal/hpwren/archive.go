// Package hpwren holds the naming conventions of the HPWREN camera
// archive: segment URL layout, gs:// storage paths, and the mapping
// from a frame's position in a 3-hour Q segment to its timestamped
// object name.
package hpwren

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// ArchiveDomain is the DNS suffix of the HPWREN archive hosts.
	ArchiveDomain = "hpwren.ucsd.edu"

	// QuarterHours is the length of one Q segment. Q1 covers
	// 00:00-03:00, Q2 03:00-06:00, and so on through Q8.
	QuarterHours = 3

	// FramesPerMinute is the assumed frame rate of the archived MP4s:
	// one frame per second of wall-clock time, 60 per minute.
	FramesPerMinute = 60

	// FramePadWidth is the zero-padding width of the sequential frame
	// filenames produced by the splitter (img00001.jpg, ...). Frame
	// timestamps are derived from lexicographic filename order, which
	// only equals numeric order while the frame count stays below
	// MaxFramesPerSegment.
	FramePadWidth = 5

	// MaxFramesPerSegment is the largest frame count for which the
	// padded names still sort in sequence order. A 3-hour segment at
	// 60 frames/minute yields 10800 frames, well within this bound.
	MaxFramesPerSegment = 99999
)

// storagePathRe matches gs://<bucket>/<name...> storage paths.
var storagePathRe = regexp.MustCompile(`^gs://([a-z0-9_.-]+)/(.+)$`)

// BuildArchiveURL returns the URL of the Qth MP4 segment for a camera
// on a given date, e.g.
//
//	http://c1.hpwren.ucsd.edu/archive/rm-w-mobo-c/large/2017/20170613/MP4/Q3.mp4
//
// yearDir is omitted from the path when empty; some archive hosts do
// not interpose a year directory.
func BuildArchiveURL(host, cameraID, yearDir, dateDir string, qNum int) string {
	parts := []string{
		fmt.Sprintf("http://%s.%s/archive", url.PathEscape(host), ArchiveDomain),
		url.PathEscape(cameraID),
		"large",
	}
	if yearDir != "" {
		parts = append(parts, url.PathEscape(yearDir))
	}
	parts = append(parts, url.PathEscape(dateDir), "MP4", fmt.Sprintf("Q%d.mp4", qNum))
	return strings.Join(parts, "/")
}

// ParseStoragePath splits a gs://bucket/prefix URI into its bucket and
// object prefix, stripping a single trailing slash from the prefix.
// ok is false when the input is not a storage path; callers must treat
// that as "not a storage path", not as an error.
func ParseStoragePath(path string) (bucket, prefix string, ok bool) {
	m := storagePathRe.FindStringSubmatch(path)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSuffix(m[2], "/"), true
}

// FrameTime maps a zero-based frame index within a Q segment to the
// hour and minute of day it was captured, assuming FramesPerMinute.
func FrameTime(qNum, frameIndex int) (hour, minute int) {
	hour = (qNum-1)*QuarterHours + frameIndex/FramesPerMinute
	minute = frameIndex % FramesPerMinute
	return hour, minute
}

// FrameObjectName derives the destination object name for the frame at
// frameIndex: {cameraID}__{YYYY}-{MM}-{DD}T{hh};{mm};00.jpg. dateDir
// must be the 8-digit YYYYMMDD archive directory name.
func FrameObjectName(cameraID, dateDir string, qNum, frameIndex int) (string, error) {
	if len(dateDir) != 8 {
		return "", fmt.Errorf("dateDir %q is not an 8-digit YYYYMMDD directory", dateDir)
	}
	hour, minute := FrameTime(qNum, frameIndex)
	return fmt.Sprintf("%s__%s-%s-%sT%02d;%02d;00.jpg",
		cameraID, dateDir[0:4], dateDir[4:6], dateDir[6:8], hour, minute), nil
}
