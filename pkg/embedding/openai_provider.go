package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openAIEmbeddingURL = "https://api.openai.com/v1/embeddings"

// OpenAIProvider implements Provider for the OpenAI embeddings API.
// text-embedding-3-small produces 1536-dimension vectors.
type OpenAIProvider struct {
	APIKey    string
	ModelName string
	Client    *http.Client
}

func NewOpenAIProvider(apiKey string, model string) Provider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		APIKey:    apiKey,
		ModelName: model,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type openAIEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) Model() string {
	return p.ModelName
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.GenerateBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *OpenAIProvider) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	reqBody := openAIEmbeddingRequest{
		Model: p.ModelName,
		Input: texts,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIEmbeddingURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embedding error: %s", string(bodyBytes))
	}

	var openAIResp openAIEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &openAIResp); err != nil {
		return nil, err
	}
	if openAIResp.Error != nil {
		return nil, fmt.Errorf("openai embedding error: %s", openAIResp.Error.Message)
	}
	if len(openAIResp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding returned %d vectors for %d inputs", len(openAIResp.Data), len(texts))
	}

	// Responses may arrive out of order; the index field is authoritative.
	vectors := make([][]float32, len(texts))
	for _, d := range openAIResp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("openai embedding returned out-of-range index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
