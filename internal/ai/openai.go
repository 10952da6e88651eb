// AngelaMos | 2026
// openai.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/monsterapp/backend/internal/config"
)

// OpenAIClient talks to the OpenAI chat completions and image generation
// APIs over plain HTTP.
type OpenAIClient struct {
	apiKey    string
	baseURL   string
	textModel string
	imageSize string
	client    *http.Client
}

func NewOpenAIClient(cfg config.AIConfig) *OpenAIClient {
	return &OpenAIClient{
		apiKey:    cfg.OpenAIAPIKey,
		baseURL:   cfg.OpenAIBaseURL,
		textModel: cfg.OpenAITextModel,
		imageSize: cfg.OpenAIImageSize,
		client:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) GenerateText(
	ctx context.Context,
	prompt string,
) (string, error) {
	requestBody := map[string]any{
		"model": c.textModel,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.7,
	}

	body, err := c.post(ctx, "/chat/completions", requestBody)
	if err != nil {
		return "", err
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GenerateImage(
	ctx context.Context,
	prompt string,
) (string, error) {
	requestBody := map[string]any{
		"prompt": prompt,
		"n":      1,
		"size":   c.imageSize,
	}

	body, err := c.post(ctx, "/images/generations", requestBody)
	if err != nil {
		return "", err
	}

	var response struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode image generation: %w", err)
	}

	if len(response.Data) == 0 || response.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no URL")
	}

	return response.Data[0].URL, nil
}

func (c *OpenAIClient) post(
	ctx context.Context,
	endpoint string,
	requestBody map[string]any,
) ([]byte, error) {
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+endpoint,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call openai %s: %w", endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf(
				"openai %s status %d: %s",
				endpoint,
				resp.StatusCode,
				apiErr.Error.Message,
			)
		}

		return nil, fmt.Errorf(
			"openai %s status %d",
			endpoint,
			resp.StatusCode,
		)
	}

	return body, nil
}
