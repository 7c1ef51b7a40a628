package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/embedding"
)

// HuggingFaceProvider calls the Inference API feature-extraction pipeline.
// Default model is BAAI/bge-large-en-v1.5 (1024 dimensions).
type HuggingFaceProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ embedding.EmbeddingProvider = &HuggingFaceProvider{}

func NewHuggingFaceProvider(apiKey, model string) *HuggingFaceProvider {
	if model == "" {
		model = "BAAI/bge-large-en-v1.5"
	}
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		baseURL: "https://api-inference.huggingface.co/pipeline/feature-extraction",
		model:   model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type featureExtractionRequest struct {
	Inputs  []string               `json:"inputs"`
	Options map[string]interface{} `json:"options,omitempty"`
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	reqBody := featureExtractionRequest{
		Inputs: []string{text},
		Options: map[string]interface{}{
			"wait_for_model": true,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	// The pipeline returns one vector per input sentence
	var vectors [][]float32
	if err := json.Unmarshal(bodyBytes, &vectors); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("empty embeddings from huggingface api")
	}

	return vectors[0], nil
}
