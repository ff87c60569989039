package hpwren

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArchiveURL(t *testing.T) {
	got := BuildArchiveURL("c1", "rm-w-mobo-c", "2017", "20170613", 3)
	assert.Equal(t, "http://c1.hpwren.ucsd.edu/archive/rm-w-mobo-c/large/2017/20170613/MP4/Q3.mp4", got)
}

func TestBuildArchiveURLNoYearDir(t *testing.T) {
	got := BuildArchiveURL("c1", "rm-w-mobo-c", "", "20170613", 1)
	assert.Equal(t, "http://c1.hpwren.ucsd.edu/archive/rm-w-mobo-c/large/20170613/MP4/Q1.mp4", got)
}

func TestBuildArchiveURLEscapesComponents(t *testing.T) {
	got := BuildArchiveURL("c1", "rm w/mobo", "2017", "20170613", 2)
	assert.Equal(t, "http://c1.hpwren.ucsd.edu/archive/rm%20w%2Fmobo/large/2017/20170613/MP4/Q2.mp4", got)
}

func TestParseStoragePath(t *testing.T) {
	bucket, prefix, ok := ParseStoragePath("gs://bucket/ffmpeg/testX/")
	require.True(t, ok)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "ffmpeg/testX", prefix)
}

func TestParseStoragePathNoTrailingSlash(t *testing.T) {
	bucket, prefix, ok := ParseStoragePath("gs://my-bucket.v2/a/b/c")
	require.True(t, ok)
	assert.Equal(t, "my-bucket.v2", bucket)
	assert.Equal(t, "a/b/c", prefix)
}

func TestParseStoragePathRejectsNonStorage(t *testing.T) {
	for _, path := range []string{
		"s3://bucket/key",
		"http://example.com/x",
		"gs://UPPER/key",
		"gs://bucket",
		"gs://bucket/",
		"",
	} {
		_, _, ok := ParseStoragePath(path)
		assert.False(t, ok, "path %q should not parse", path)
	}
}

func TestFrameTime(t *testing.T) {
	cases := []struct {
		qNum, index  int
		hour, minute int
	}{
		{1, 0, 0, 0},
		{1, 59, 0, 59},
		{1, 60, 1, 0},
		{1, 179, 2, 59},
		{1, 180, 3, 0},
		{3, 0, 6, 0},
		{3, 65, 7, 5},
		{4, 121, 11, 1},
		{8, 0, 21, 0},
		{8, 10799, 23, 59}, // last frame of the day at 60 frames/min
	}
	for _, c := range cases {
		hour, minute := FrameTime(c.qNum, c.index)
		assert.Equal(t, c.hour, hour, "q%d frame %d hour", c.qNum, c.index)
		assert.Equal(t, c.minute, minute, "q%d frame %d minute", c.qNum, c.index)
	}
}

func TestFrameObjectName(t *testing.T) {
	name, err := FrameObjectName("rm-w-mobo-c", "20170613", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "rm-w-mobo-c__2017-06-13T09;00;00.jpg", name)

	name, err = FrameObjectName("rm-w-mobo-c", "20170613", 1, 65)
	require.NoError(t, err)
	assert.Equal(t, "rm-w-mobo-c__2017-06-13T01;05;00.jpg", name)
}

func TestFrameObjectNameBadDateDir(t *testing.T) {
	_, err := FrameObjectName("cam", "2017", 1, 0)
	assert.Error(t, err)
}

// Padded filenames must sort lexicographically in sequence order for
// every frame count a segment can produce, since frame timestamps are
// derived from sort position.
func TestFramePaddingPreservesSequenceOrder(t *testing.T) {
	require.GreaterOrEqual(t, MaxFramesPerSegment, QuarterHours*60*FramesPerMinute)

	indices := []int{0, 1, 9, 10, 99, 100, 999, 1000, 9999, 10000, 10799, MaxFramesPerSegment - 1}
	names := make([]string, len(indices))
	for i, n := range indices {
		names[i] = fmt.Sprintf("img%0*d.jpg", FramePadWidth, n+1)
	}
	assert.True(t, sort.StringsAreSorted(names), "zero-padded names out of order: %v", names)
}
