package factory

import (
	"fmt"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm/mistral"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "mistral":
		return mistral.NewMistralProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
