package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm"
)

const shapeDescription = `{"product": string or null, "location": string or null, "approximate_volume": string or null, "deadline": string or null}`

// Extractor pulls the structured sales slots out of free text. Malformed
// model output gets one repair pass; if that also fails the extractor
// degrades to an empty set instead of failing the turn.
type Extractor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewExtractor(llmProvider llm.LLMProvider, logger *log.Logger) *Extractor {
	return &Extractor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Extract never returns an error: every failure mode collapses to Empty().
func (e *Extractor) Extract(ctx context.Context, utterance string) SlotSet {
	response, err := e.llmProvider.Generate(ctx, e.buildPrompt(utterance), llm.WithTemperature(0.0))
	if err != nil {
		e.logger.Printf("[WARN] Slot extraction call failed, degrading to empty slots: %v", err)
		return Empty()
	}

	set, err := parseSlots(response)
	if err == nil {
		return set.Normalize()
	}

	e.logger.Printf("[WARN] Slot extraction returned malformed JSON, attempting repair: %v", err)

	repaired, err := e.llmProvider.Generate(ctx, e.buildRepairPrompt(response), llm.WithTemperature(0.0))
	if err != nil {
		e.logger.Printf("[WARN] Slot repair call failed, degrading to empty slots: %v", err)
		return Empty()
	}

	set, err = parseSlots(repaired)
	if err != nil {
		e.logger.Printf("[WARN] Slot repair output still malformed, degrading to empty slots: %v", err)
		return Empty()
	}

	return set.Normalize()
}

func (e *Extractor) buildPrompt(utterance string) string {
	var prompt strings.Builder

	prompt.WriteString("Extract order information from the customer's sentence below.\n")
	prompt.WriteString("Respond with ONLY a JSON object of this exact shape:\n")
	prompt.WriteString(shapeDescription)
	prompt.WriteString("\n\nRules:\n")
	prompt.WriteString("- Use null for any field the sentence does not mention.\n")
	prompt.WriteString("- Copy values as the customer wrote them, do not invent.\n\n")
	prompt.WriteString("Sentence: ")
	prompt.WriteString(utterance)

	return prompt.String()
}

func (e *Extractor) buildRepairPrompt(malformed string) string {
	var prompt strings.Builder

	prompt.WriteString("The text below was supposed to be a JSON object of this shape:\n")
	prompt.WriteString(shapeDescription)
	prompt.WriteString("\n\nIt is not valid JSON. Rewrite it as valid JSON of that exact shape, ")
	prompt.WriteString("keeping the values. Respond with the JSON only.\n\n")
	prompt.WriteString(malformed)

	return prompt.String()
}

func parseSlots(response string) (SlotSet, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return Empty(), fmt.Errorf("no JSON object found in response")
	}

	var set SlotSet
	if err := json.Unmarshal([]byte(jsonContent), &set); err != nil {
		return Empty(), fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	return set, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
