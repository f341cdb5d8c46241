package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Uploader stores an image with an external host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// LogUploader skips the upload and returns a placeholder URL — used in ENV=local.
type LogUploader struct {
	logger *slog.Logger
}

func (u *LogUploader) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	url := "http://localhost/uploads/" + filename
	u.logger.Info("image upload (local dev)", "filename", filename, "url", url)
	return url, nil
}

// HostUploader streams the file to the configured image host.
type HostUploader struct {
	client *resty.Client
	apiKey string
}

type hostResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *HostUploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var out hostResponse

	resp, err := u.client.R().
		SetContext(ctx).
		SetQueryParam("key", u.apiKey).
		SetFileReader("image", filename, file).
		SetResult(&out).
		SetError(&out).
		Post("")
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("image host returned %s: %s", resp.Status(), out.Error.Message)
	}
	if out.Data.URL == "" {
		return "", fmt.Errorf("image host returned no URL")
	}
	return out.Data.URL, nil
}

// NewUploader returns a LogUploader for ENV=local, HostUploader otherwise.
func NewUploader(env, hostURL, apiKey string, logger *slog.Logger) Uploader {
	if env == "local" {
		return &LogUploader{logger: logger}
	}
	client := resty.New().
		SetBaseURL(hostURL).
		SetTimeout(30 * time.Second)
	return &HostUploader{client: client, apiKey: apiKey}
}
