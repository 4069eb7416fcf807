package parse

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxDownloadBytes guards against a storage URL that serves something far
// larger than any bill.
const maxDownloadBytes = maxPDFBytes + 1

// FetchPDF downloads the stored PDF of a document.
func FetchPDF(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid storage URL: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download document: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	if len(data) >= maxDownloadBytes {
		return nil, ErrPDFTooLarge
	}

	return data, nil
}
