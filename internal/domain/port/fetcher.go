package port

import "context"

// ArchiveFetcher streams a remote URL to a local file.
type ArchiveFetcher interface {
	FetchToFile(ctx context.Context, url, destPath string) error
}
