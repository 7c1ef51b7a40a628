package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/retrieval"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm"
)

// Provenance names the source a snippet came from.
type Provenance struct {
	Origin     string  `json:"origin"`
	Similarity float64 `json:"similarity"`
}

// Composed is the structured composer result. Grounded is false when the
// answer cannot be backed by retrieved content, either because nothing was
// retrieved or because the model emitted the escalation marker.
type Composed struct {
	Text     string
	Grounded bool
	Sources  []Provenance
}

// Composer generates the reply text from retrieved snippets and history.
type Composer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewComposer(llmProvider llm.LLMProvider, logger *log.Logger) *Composer {
	return &Composer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Compose answers the utterance strictly from the given snippets. With no
// snippets it does not call the model at all: the result is ungrounded and
// the stage resolver forces the escalation reply.
func (c *Composer) Compose(
	ctx context.Context,
	utterance string,
	snippets []retrieval.Snippet,
	history []llm.Message,
) (*Composed, error) {

	sources := make([]Provenance, 0, len(snippets))
	for _, s := range snippets {
		sources = append(sources, Provenance{
			Origin:     s.Origin,
			Similarity: s.Similarity,
		})
	}

	if len(snippets) == 0 {
		c.logger.Printf("[COMPOSE] No snippets retrieved, skipping generation")
		return &Composed{
			Text:     EscalationReply,
			Grounded: false,
			Sources:  sources,
		}, nil
	}

	promptText := c.buildPrompt(utterance, snippets)
	fullHistory := append(append([]llm.Message{}, history...), llm.Message{
		Role:    "user",
		Content: promptText,
	})

	text, err := c.llmProvider.Chat(ctx, fullHistory, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("compose reply: %w", err)
	}

	text = strings.TrimSpace(text)
	grounded := !ContainsEscalation(text)

	c.logger.Printf("[COMPOSE] Reply generated from %d snippets (grounded=%v)", len(snippets), grounded)

	return &Composed{
		Text:     text,
		Grounded: grounded,
		Sources:  sources,
	}, nil
}

func (c *Composer) buildPrompt(utterance string, snippets []retrieval.Snippet) string {
	var prompt strings.Builder

	prompt.WriteString("You are the virtual attendant of Cemear, specialized in flooring, ")
	prompt.WriteString("partitions, brise and acoustic solutions.\n")
	prompt.WriteString("Rules:\n")
	prompt.WriteString("- Answer ONLY based on the documents below.\n")
	prompt.WriteString("- Be cordial and brief (3 sentences maximum).\n")
	prompt.WriteString("- Never invent. If the documents do not answer it, say exactly: \"")
	prompt.WriteString(EscalationReply)
	prompt.WriteString("\"\n\n")

	prompt.WriteString("DOCUMENTS:\n")
	for _, s := range snippets {
		prompt.WriteString(fmt.Sprintf("\n--- SOURCE: %s ---\n", s.Origin))
		prompt.WriteString(s.Content)
		prompt.WriteString("\n")
	}

	prompt.WriteString("\nQUESTION:\n")
	prompt.WriteString(utterance)

	return prompt.String()
}
