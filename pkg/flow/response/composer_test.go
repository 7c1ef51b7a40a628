package response

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/retrieval"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm"
)

type stubLLM struct {
	response string
	calls    int
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	s.calls++
	return s.response, nil
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	s.calls++
	return s.response, nil
}

func silentLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestComposeZeroSnippetsSkipsModel(t *testing.T) {
	provider := &stubLLM{response: "should never be used"}
	c := NewComposer(provider, silentLogger())

	got, err := c.Compose(context.Background(), "do you sell marble?", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls != 0 {
		t.Errorf("model calls = %d, want 0", provider.calls)
	}
	if got.Grounded {
		t.Error("Grounded = true, want false")
	}
	if got.Text != EscalationReply {
		t.Errorf("Text = %q, want exact escalation reply", got.Text)
	}
	if len(got.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", got.Sources)
	}
}

func TestComposeGroundedReply(t *testing.T) {
	provider := &stubLLM{response: "Vinyl flooring resists moisture and is easy to clean."}
	c := NewComposer(provider, silentLogger())

	snippets := []retrieval.Snippet{
		{Content: "Vinyl flooring: water resistant, easy maintenance.", Origin: "catalog.pdf", Similarity: 0.91},
		{Content: "Cleaning guide for vinyl.", Origin: "faq.md", Similarity: 0.82},
	}

	got, err := c.Compose(context.Background(), "is vinyl good for kitchens?", snippets, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Grounded {
		t.Error("Grounded = false, want true")
	}
	if len(got.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(got.Sources))
	}
	if got.Sources[0].Origin != "catalog.pdf" || got.Sources[0].Similarity != 0.91 {
		t.Errorf("Sources[0] = %+v", got.Sources[0])
	}
}

func TestComposeDetectsEscalationMarker(t *testing.T) {
	provider := &stubLLM{response: "I NEED TO CONSULT A SPECIALIST about that. Our team will get back to you shortly."}
	c := NewComposer(provider, silentLogger())

	snippets := []retrieval.Snippet{{Content: "unrelated", Origin: "faq.md", Similarity: 0.4}}

	got, err := c.Compose(context.Background(), "how do I apply for a job?", snippets, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Grounded {
		t.Error("Grounded = true, want false when the marker is present")
	}
}

func TestContainsEscalation(t *testing.T) {
	if !ContainsEscalation("i Need To Consult A Specialist here") {
		t.Error("expected case-insensitive match")
	}
	if ContainsEscalation("happy to help with flooring") {
		t.Error("unexpected match")
	}
}

func TestComposePromptCarriesSources(t *testing.T) {
	c := NewComposer(&stubLLM{}, silentLogger())
	prompt := c.buildPrompt("question?", []retrieval.Snippet{
		{Content: "body text", Origin: "catalog.pdf"},
	})

	if !strings.Contains(prompt, "SOURCE: catalog.pdf") {
		t.Errorf("prompt missing source header:\n%s", prompt)
	}
	if !strings.Contains(prompt, EscalationReply) {
		t.Error("prompt missing the exact escalation instruction")
	}
}
