package datosabiertos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Client fetches dataset exports published on the datos.cdmx.gob.mx
// open data portal.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// EnsureDataset guarantees the dataset file exists at path, downloading
// it from url when missing. The download lands in a temp file first and
// is renamed into place, so a partial fetch never looks like a usable
// dataset.
func (c *Client) EnsureDataset(ctx context.Context, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		c.logger.Debug("Dataset already present", zap.String("path", path))
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat dataset: %w", err)
	}

	if url == "" {
		return fmt.Errorf("dataset %s is missing and no download URL is configured", path)
	}

	c.logger.Info("Downloading dataset",
		zap.String("url", url),
		zap.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Dataset download failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("dataset download error: status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".partial-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move dataset into place: %w", err)
	}

	c.logger.Info("Dataset downloaded",
		zap.String("path", path),
		zap.Int64("bytes", written))
	return nil
}
