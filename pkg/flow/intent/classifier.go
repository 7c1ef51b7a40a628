package intent

import (
	"context"
	"log"
	"strings"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm"
)

// Classifier maps a raw utterance onto the closed intent set with a single
// LLM call. Classification has no recovery path: a failed call propagates
// to the orchestrator and aborts the turn before anything is written.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify returns the intent label for one utterance.
func (c *Classifier) Classify(ctx context.Context, utterance string) (Intent, error) {
	prompt := c.buildPrompt(utterance)

	// Temperature 0 for deterministic labels
	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return IntentUnknown, err
	}

	resolved := Parse(response)
	if resolved == IntentUnknown {
		c.logger.Printf("[WARN] Classifier returned unrecognized label: %q", strings.TrimSpace(response))
	} else {
		c.logger.Printf("[INTENT] Classified as %s", resolved)
	}

	return resolved, nil
}

func (c *Classifier) buildPrompt(utterance string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an intent classifier for the virtual assistant of Cemear ")
	prompt.WriteString("(flooring, partitions and acoustic solutions).\n")
	prompt.WriteString("Classify the customer's sentence into EXACTLY ONE of the following categories:\n")
	prompt.WriteString("- GREETING\n")
	prompt.WriteString("- QUOTE_REQUEST\n")
	prompt.WriteString("- PRODUCT_QUESTION\n")
	prompt.WriteString("- JOB_INQUIRY\n")
	prompt.WriteString("- OUT_OF_REGION\n")
	prompt.WriteString("- FLOW_CONTINUATION\n")
	prompt.WriteString("- FAREWELL\n")
	prompt.WriteString("- CONFIRMATION\n")
	prompt.WriteString("- OTHER\n\n")
	prompt.WriteString("Answer with the category name only, nothing else.\n\n")
	prompt.WriteString("Sentence: ")
	prompt.WriteString(utterance)
	prompt.WriteString("\nCategory:")

	return prompt.String()
}
