package httpfetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Fetcher downloads archive segments over plain HTTP. The HPWREN
// archive serves MP4s without authentication.
type Fetcher struct {
	client *resty.Client
	logger *zap.Logger
}

func NewFetcher(timeout time.Duration, logger *zap.Logger) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	return &Fetcher{client: client, logger: logger}
}

func (f *Fetcher) FetchToFile(ctx context.Context, url, destPath string) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetOutput(destPath).
		Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("fetch %s: status %s", url, resp.Status())
	}

	f.logger.Debug("archive segment downloaded",
		zap.String("url", url),
		zap.String("dest", destPath),
	)
	return nil
}
