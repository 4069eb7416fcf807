package parse

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// maxPDFBytes is the Vision API limit for synchronous inline processing.
const maxPDFBytes = 20 * 1024 * 1024

// TextExtractor returns the best-effort full text of a PDF. An empty
// string is a valid result, scanned bills without a text layer may simply
// not OCR.
type TextExtractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

// VisionExtractor extracts PDF text with the Google Cloud Vision
// document text detection over inline file content.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionExtractor creates an extractor with credentials from the
// environment: GOOGLE_CREDENTIALS holds inline JSON,
// GOOGLE_APPLICATION_CREDENTIALS a file path, otherwise application
// default credentials are used.
func NewVisionExtractor(ctx context.Context) (*VisionExtractor, error) {
	var opts []option.ClientOption

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision client: %w", err)
	}

	return &VisionExtractor{client: client}, nil
}

// ExtractText runs document text detection over the PDF and concatenates
// the per-page annotations.
func (v *VisionExtractor) ExtractText(ctx context.Context, pdf []byte) (string, error) {
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		return "", ErrInvalidPDF
	}

	if len(pdf) > maxPDFBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrPDFTooLarge, len(pdf))
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  pdf,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", fmt.Errorf("Vision API call failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return "", fmt.Errorf("Vision API error: %s", fileResp.Error.Message)
	}

	var text strings.Builder
	for _, page := range fileResp.Responses {
		if page.Error != nil {
			return "", fmt.Errorf("Vision API page error: %s", page.Error.Message)
		}

		if page.FullTextAnnotation != nil {
			text.WriteString(page.FullTextAnnotation.Text)
		}
	}

	return text.String(), nil
}

// Close closes the underlying Vision client.
func (v *VisionExtractor) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}
