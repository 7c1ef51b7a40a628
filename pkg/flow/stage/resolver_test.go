package stage

import (
	"strings"
	"testing"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/intent"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/response"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/slots"
)

func strPtr(s string) *string { return &s }

func grounded(text string) response.Composed {
	return response.Composed{Text: text, Grounded: true}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		in         Input
		wantReply  string
		wantStage  Stage
		wantPrefix string
		wantSuffix string
	}{
		{
			name: "zero snippets forces escalation and ends the flow",
			in: Input{
				Intent:       intent.IntentQuoteRequest,
				Slots:        slots.SlotSet{},
				Composed:     response.Composed{Text: response.EscalationReply, Grounded: false},
				SnippetCount: 0,
			},
			wantReply: response.EscalationReply,
			wantStage: StageDone,
		},
		{
			name: "ungrounded composition escalates even with snippets",
			in: Input{
				Intent:       intent.IntentProductQuestion,
				Composed:     response.Composed{Text: "I need to consult a specialist about that.", Grounded: false},
				SnippetCount: 3,
			},
			wantReply: response.EscalationReply,
			wantStage: StageDone,
		},
		{
			name: "complete quote request hands off to a human",
			in: Input{
				Intent: intent.IntentQuoteRequest,
				Slots: slots.SlotSet{
					Product:  strPtr("vinyl flooring"),
					Location: strPtr("Porto Alegre"),
				},
				Composed:     grounded("We offer vinyl flooring in several finishes."),
				SnippetCount: 2,
			},
			wantReply: response.HandOffReply,
			wantStage: StageDone,
		},
		{
			name: "incomplete quote request asks for the missing fields",
			in: Input{
				Intent:       intent.IntentQuoteRequest,
				Slots:        slots.SlotSet{Product: strPtr("vinyl flooring")},
				Composed:     grounded("We offer vinyl flooring in several finishes."),
				SnippetCount: 2,
			},
			wantSuffix: response.ForwardingSuffix,
			wantStage:  StageInfoCollection,
		},
		{
			name: "confirmation with volume uses the registered template",
			in: Input{
				Intent: intent.IntentConfirmation,
				Slots: slots.SlotSet{
					Product:           strPtr("acoustic panels"),
					Location:          strPtr("Canoas"),
					ApproximateVolume: strPtr("40m²"),
				},
				Composed:     grounded("Sure."),
				SnippetCount: 1,
			},
			wantReply: "Confirmed! Your request for 40m² of acoustic panels in Canoas has been registered. Our team will contact you shortly.",
			wantStage: StageDone,
		},
		{
			name: "confirmation without volume falls back to unspecified",
			in: Input{
				Intent: intent.IntentConfirmation,
				Slots: slots.SlotSet{
					Product:  strPtr("acoustic panels"),
					Location: strPtr("Canoas"),
				},
				Composed:     grounded("Sure."),
				SnippetCount: 1,
			},
			wantReply: "Confirmed! Your request for unspecified volume of acoustic panels in Canoas has been registered. Our team will contact you shortly.",
			wantStage: StageDone,
		},
		{
			name: "confirmation without product stays conversational",
			in: Input{
				Intent:       intent.IntentConfirmation,
				Slots:        slots.SlotSet{Location: strPtr("Canoas")},
				Composed:     grounded("Could you remind me which product?"),
				SnippetCount: 1,
			},
			wantReply: "Could you remind me which product?",
			wantStage: StageMiddle,
		},
		{
			name: "first greeting gets the welcome prefix and START",
			in: Input{
				Intent:           intent.IntentGreeting,
				Composed:         grounded("How can I help you today?"),
				SnippetCount:     1,
				FirstInteraction: true,
			},
			wantPrefix: response.GreetingPrefix,
			wantStage:  StageStart,
		},
		{
			name: "later greeting has no prefix and lands on MIDDLE",
			in: Input{
				Intent:       intent.IntentGreeting,
				Composed:     grounded("Hello again!"),
				SnippetCount: 1,
			},
			wantReply: "Hello again!",
			wantStage: StageMiddle,
		},
		{
			name: "farewell closes the session",
			in: Input{
				Intent:       intent.IntentFarewell,
				Composed:     grounded("Thank you for reaching out!"),
				SnippetCount: 1,
			},
			wantReply: "Thank you for reaching out!",
			wantStage: StageDone,
		},
		{
			name: "out of region closes the session",
			in: Input{
				Intent:       intent.IntentOutOfRegion,
				Composed:     grounded("We currently serve the metropolitan region only."),
				SnippetCount: 1,
			},
			wantStage: StageDone,
		},
		{
			name: "unknown label behaves like a mid conversation turn",
			in: Input{
				Intent:       intent.IntentUnknown,
				Composed:     grounded("Here is what I found."),
				SnippetCount: 2,
			},
			wantReply: "Here is what I found.",
			wantStage: StageMiddle,
		},
		{
			name: "product question passes the composed text through",
			in: Input{
				Intent:       intent.IntentProductQuestion,
				Composed:     grounded("Vinyl flooring resists moisture well."),
				SnippetCount: 2,
			},
			wantReply: "Vinyl flooring resists moisture well.",
			wantStage: StageMiddle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in)

			if tt.wantReply != "" && got.Reply != tt.wantReply {
				t.Errorf("Reply = %q, want %q", got.Reply, tt.wantReply)
			}
			if tt.wantPrefix != "" && !strings.HasPrefix(got.Reply, tt.wantPrefix) {
				t.Errorf("Reply = %q, want prefix %q", got.Reply, tt.wantPrefix)
			}
			if tt.wantSuffix != "" && !strings.HasSuffix(got.Reply, tt.wantSuffix) {
				t.Errorf("Reply = %q, want suffix %q", got.Reply, tt.wantSuffix)
			}
			if got.Stage != tt.wantStage {
				t.Errorf("Stage = %s, want %s", got.Stage, tt.wantStage)
			}
		})
	}
}

func TestResolveEscalationBeatsIntentRules(t *testing.T) {
	// A complete quote request would normally hand off, but an ungrounded
	// composition must still end in escalation.
	got := Resolve(Input{
		Intent: intent.IntentQuoteRequest,
		Slots: slots.SlotSet{
			Product:  strPtr("vinyl flooring"),
			Location: strPtr("Porto Alegre"),
		},
		Composed:     response.Composed{Text: "no idea", Grounded: false},
		SnippetCount: 2,
	})

	if got.Reply != response.EscalationReply {
		t.Errorf("Reply = %q, want escalation", got.Reply)
	}
	if got.Stage != StageDone {
		t.Errorf("Stage = %s, want DONE", got.Stage)
	}
}
