package providers

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/constants"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/logging"
)

// KaggleProvider downloads dataset archives from the Kaggle public API
// using basic authentication. It performs no retries; a failure surfaces
// as a ProviderError and the caller degrades to summary-only mode.
type KaggleProvider struct {
	BaseURL  string
	Username string
	Key      string
	Client   *http.Client
}

// NewKaggleProvider creates a provider with credentials from the environment
func NewKaggleProvider() *KaggleProvider {
	baseURL := os.Getenv("KAGGLE_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://www.kaggle.com/api/v1" // Default
	}

	return &KaggleProvider{
		BaseURL:  baseURL,
		Username: os.Getenv("KAGGLE_USERNAME"),
		Key:      os.Getenv("KAGGLE_KEY"),
		Client: &http.Client{
			Timeout: 10 * time.Minute, // archives run to hundreds of MB
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *KaggleProvider) GetProviderType() string {
	return "kaggle_datasets_api"
}

// DownloadAndExtract fetches the dataset archive and unpacks its files into
// destDir. The archive itself is kept next to them so a re-run can see that
// the download already happened.
func (p *KaggleProvider) DownloadAndExtract(ctx context.Context, dataset string, destDir string) error {
	if p.Username == "" || p.Key == "" {
		return &ProviderError{
			Code:    constants.ErrCodeMissingCredentials,
			Message: "KAGGLE_USERNAME and KAGGLE_KEY environment variables are not set",
		}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeExtractionFailed,
			Message: fmt.Sprintf("Failed to create data directory %s", destDir),
			Err:     err,
		}
	}

	archivePath := filepath.Join(destDir, archiveName(dataset))
	if err := p.download(ctx, dataset, archivePath); err != nil {
		return err
	}
	return extractArchive(archivePath, destDir)
}

func (p *KaggleProvider) download(ctx context.Context, dataset string, archivePath string) error {
	url := fmt.Sprintf("%s/datasets/download/%s", p.BaseURL, dataset)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.SetBasicAuth(p.Username, p.Key)

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if err := p.buildHTTPError(resp.StatusCode, dataset); err != nil {
		return err
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeExtractionFailed,
			Message: fmt.Sprintf("Failed to create archive file %s", archivePath),
			Err:     err,
		}
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Download interrupted",
			Err:     err,
		}
	}

	logging.Info("Dataset archive downloaded",
		"dataset", dataset,
		"bytes", written,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// buildHTTPError creates appropriate error based on status code
func (p *KaggleProvider) buildHTTPError(statusCode int, dataset string) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeAuthenticationFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeAuthenticationFailed),
			Details: fmt.Sprintf("HTTP %d for dataset %s", statusCode, dataset),
		}
	case statusCode == http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeDatasetNotFound,
			Message: fmt.Sprintf("Dataset not found: %s", dataset),
		}
	case statusCode == http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("Unexpected HTTP status %d downloading dataset %s", statusCode, dataset),
		}
	}
}

// extractArchive unpacks every file in the zip into destDir, flattening any
// directory structure. Entry names are sanitized against path traversal.
func extractArchive(archivePath string, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeArchiveCorrupt,
			Message: constants.GetErrorMessage(constants.ErrCodeArchiveCorrupt),
			Details: archivePath,
			Err:     err,
		}
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		if name == "." || name == ".." || name == "" {
			continue
		}
		if err := extractFile(f, filepath.Join(destDir, name)); err != nil {
			return err
		}
		logging.Info("Extracted dataset file", "file", name)
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeExtractionFailed,
			Message: fmt.Sprintf("Failed to open archive entry %s", f.Name),
			Err:     err,
		}
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeExtractionFailed,
			Message: fmt.Sprintf("Failed to create %s", dest),
			Err:     err,
		}
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeExtractionFailed,
			Message: fmt.Sprintf("Failed to write %s", dest),
			Err:     err,
		}
	}
	return nil
}

func archiveName(dataset string) string {
	name := strings.ReplaceAll(dataset, "/", "_")
	return name + ".zip"
}
