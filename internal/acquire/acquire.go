package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"reelpress/internal/clip"
	"reelpress/internal/logging"
)

// Fixed request headers sent with every clip download. Descriptor provenance
// headers override duplicates.
const (
	HeaderExperienceAPIVersion = "1.0.3"
	headerVideoSource          = "piapi"
	headerVideoProcessing      = "automated"
)

// ErrNoClips is returned when not a single clip could be resolved and fetched.
var ErrNoClips = errors.New("no clips could be acquired")

// Result reports the outcome of acquiring a descriptor set.
type Result struct {
	// Files holds the local paths of successfully fetched clips, in input order.
	Files []string
	// Warnings records descriptors that were skipped and why.
	Warnings []string
}

// Downloader fetches clip bytes over HTTP with the domain-protocol headers
// the clip source servers expect.
type Downloader struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewDownloader constructs a Downloader with the given request timeout.
func NewDownloader(timeout time.Duration, userAgent string, logger *slog.Logger) *Downloader {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if userAgent == "" {
		userAgent = "reelpress/1.0"
	}
	return &Downloader{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logging.NewComponentLogger(logger, "acquire"),
	}
}

// Download fetches url into dest. Extra headers override the fixed set on
// key collisions. Any transport error or non-success response fails the
// download; a partially written dest file is removed.
func (d *Downloader) Download(ctx context.Context, url, dest string, extra map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("X-Experience-API-Version", HeaderExperienceAPIVersion)
	req.Header.Set("X-Video-Source", headerVideoSource)
	req.Header.Set("X-Video-Processing", headerVideoProcessing)
	req.Header.Set("Accept", "application/json, video/mp4, */*")
	for key, value := range extra {
		req.Header.Set(key, value)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return out.Close()
}

// AcquireAll resolves and fetches every descriptor sequentially. Individual
// failures are skipped with a warning; ErrNoClips is returned only when the
// whole set yields nothing.
func (d *Downloader) AcquireAll(ctx context.Context, descriptors []clip.Descriptor, tempDir, taskID string) (Result, error) {
	var result Result
	for i, descriptor := range descriptors {
		url, ok := descriptor.ResolveURL()
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("clip %d: no resolvable media URL", i+1))
			continue
		}

		dest := filepath.Join(tempDir, fmt.Sprintf("clip_%d_%s.mp4", i, taskID))
		d.logger.Info("downloading clip",
			logging.String(logging.FieldTaskID, taskID),
			logging.Int("clip", i+1),
			logging.String("url", url))
		if err := d.Download(ctx, url, dest, descriptor.ProvenanceHeaders()); err != nil {
			d.logger.Warn("clip download failed",
				logging.String(logging.FieldTaskID, taskID),
				logging.Int("clip", i+1),
				logging.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("clip %d: download failed", i+1))
			continue
		}
		result.Files = append(result.Files, dest)
	}

	if len(result.Files) == 0 {
		return result, ErrNoClips
	}
	return result, nil
}
