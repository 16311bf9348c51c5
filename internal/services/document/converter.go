package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Converter turns an uploaded word-processing file into the editor's
// internal encoding (SFDT). The real implementation proxies an external
// conversion web service; tests substitute a fake.
type Converter interface {
	Convert(ctx context.Context, filename string, file io.Reader) (string, error)
}

// HTTPConverter calls an external document conversion service over HTTP.
// The service accepts a multipart upload under the "files" field and
// responds with the converted document as text.
type HTTPConverter struct {
	url        string
	httpClient *http.Client
}

// NewHTTPConverter creates a converter backed by the service at url
func NewHTTPConverter(url string) *HTTPConverter {
	return &HTTPConverter{
		url: strings.TrimSuffix(url, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Ensure HTTPConverter implements Converter
var _ Converter = (*HTTPConverter)(nil)

// Convert uploads the file and returns the converted SFDT text
func (c *HTTPConverter) Convert(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("conversion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading conversion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrConversionFailed, resp.StatusCode)
	}

	return string(respBody), nil
}
