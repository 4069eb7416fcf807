package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/tolva-app/backend/internal/billing"
)

const (
	// DefaultModel is used when OPENAI_MODEL is not set.
	DefaultModel = "gpt-4o-mini"

	systemPrompt = "You are a meticulous assistant that extracts structured billing data from PDF text. Always respond with JSON that strictly matches the provided schema."
	userPrompt   = "Analyze the following PDF text and extract any billing related metadata. Use the schema fields and return null when information cannot be determined."
)

// billSchema is the strict response schema for the extraction call. Every
// field except text is nullable, the sanitizer treats nulls as absent.
var billSchema = json.RawMessage(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"text": {"type": "string"},
		"providerId": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"providerNameDetected": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"category": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"totalAmount": {"anyOf": [{"type": "number"}, {"type": "null"}]},
		"currency": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"issueDate": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"dueDate": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"periodStart": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"periodEnd": {"anyOf": [{"type": "string"}, {"type": "null"}]},
		"hoaDetails": {
			"anyOf": [
				{"type": "null"},
				{
					"type": "object",
					"additionalProperties": false,
					"properties": {
						"buildingCode": {"anyOf": [{"type": "string"}, {"type": "null"}]},
						"buildingAddress": {"anyOf": [{"type": "string"}, {"type": "null"}]},
						"unitCode": {"anyOf": [{"type": "string"}, {"type": "null"}]},
						"unitLabel": {"anyOf": [{"type": "string"}, {"type": "null"}]},
						"ownerName": {"anyOf": [{"type": "string"}, {"type": "null"}]},
						"periodLabel": {"anyOf": [{"type": "string"}, {"type": "null"}]},
						"periodYear": {"anyOf": [{"type": "number"}, {"type": "null"}]},
						"periodMonth": {"anyOf": [{"type": "number"}, {"type": "null"}]},
						"firstDueAmount": {"anyOf": [{"type": "number"}, {"type": "null"}]},
						"secondDueAmount": {"anyOf": [{"type": "number"}, {"type": "null"}]},
						"totalBuildingExpenses": {"anyOf": [{"type": "number"}, {"type": "null"}]},
						"totalToPayUnit": {"anyOf": [{"type": "number"}, {"type": "null"}]},
						"rubros": {
							"type": "array",
							"items": {
								"type": "object",
								"additionalProperties": false,
								"properties": {
									"rubroNumber": {"anyOf": [{"type": "number"}, {"type": "null"}]},
									"label": {"anyOf": [{"type": "string"}, {"type": "null"}]},
									"total": {"anyOf": [{"type": "number"}, {"type": "null"}]}
								},
								"required": ["rubroNumber", "label", "total"]
							}
						}
					},
					"required": ["buildingCode", "buildingAddress", "unitCode", "unitLabel", "ownerName", "periodLabel", "periodYear", "periodMonth", "firstDueAmount", "secondDueAmount", "totalBuildingExpenses", "totalToPayUnit", "rubros"]
				}
			]
		}
	},
	"required": ["text"]
}`)

// Parser turns raw bill PDF bytes into sanitized billing fields.
type Parser struct {
	extractor TextExtractor
	client    *openai.Client
	model     string
}

// NewParser creates a parser with explicit dependencies.
func NewParser(extractor TextExtractor, client *openai.Client, model string) *Parser {
	if model == "" {
		model = DefaultModel
	}

	return &Parser{
		extractor: extractor,
		client:    client,
		model:     model,
	}
}

// NewParserFromEnv creates a parser with a Vision extractor and an OpenAI
// client configured from OPENAI_API_KEY, OPENAI_BASE_URL and OPENAI_MODEL.
func NewParserFromEnv(ctx context.Context) (*Parser, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}

	extractor, err := NewVisionExtractor(ctx)
	if err != nil {
		return nil, err
	}

	return NewParser(extractor, openai.NewClientWithConfig(config), os.Getenv("OPENAI_MODEL")), nil
}

// Parse extracts text from the PDF, sends the relevant excerpt to the
// model and returns the sanitized result. A failure anywhere in the chain
// is terminal for this attempt, retrying is up to the caller.
func (p *Parser) Parse(ctx context.Context, pdf []byte) (billing.ParseResult, error) {
	fullText, err := p.extractor.ExtractText(ctx, pdf)
	if err != nil {
		return billing.ParseResult{}, fmt.Errorf("text extraction failed: %w", err)
	}

	relevantText := ExtractRelevantText(fullText)

	log.Debug().
		Int("textLength", len(fullText)).
		Int("excerptLength", len(relevantText)).
		Str("model", p.model).
		Msg("requesting billing extraction")

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt + "\n\n" + relevantText},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "billing_parse_result",
				Schema: billSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return billing.ParseResult{}, fmt.Errorf("completion request failed: %w", err)
	}

	content, err := firstMessageText(resp)
	if err != nil {
		return billing.ParseResult{}, err
	}

	return DecodeCompletion(fullText, content)
}

// DecodeCompletion parses the model's JSON payload and sanitizes it. When
// the model returned no usable text field the OCR full text is kept
// instead, the raw text is what reviewers see in the UI.
func DecodeCompletion(fullText, content string) (billing.ParseResult, error) {
	var raw any
	err := json.Unmarshal([]byte(content), &raw)
	if err != nil {
		return billing.ParseResult{}, fmt.Errorf("model response is not valid JSON: %w", err)
	}

	result := billing.SanitizeParseResult(raw)
	if result.Text == nil && fullText != "" {
		result.Text = &fullText
	}

	return result, nil
}

// firstMessageText returns the first non-empty text payload of the
// response choices.
func firstMessageText(resp openai.ChatCompletionResponse) (string, error) {
	for _, choice := range resp.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}

		for _, part := range choice.Message.MultiContent {
			if part.Type == openai.ChatMessagePartTypeText {
				if text := strings.TrimSpace(part.Text); text != "" {
					return text, nil
				}
			}
		}
	}

	return "", ErrNoCompletionText
}
