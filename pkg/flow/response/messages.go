package response

import "strings"

// Canonical reply fragments of the scripted sales flow. The exact wording
// matters: the stage resolver matches on EscalationPhrase, and downstream
// teams key off these sentences.
const (
	// EscalationPhrase is the marker the composer model is instructed to
	// emit when it cannot answer from the knowledge base.
	EscalationPhrase = "need to consult a specialist"

	// EscalationReply replaces the composed text entirely whenever the
	// conversation must be handed to a specialist.
	EscalationReply = "I need to consult a specialist about that. Our team will get back to you shortly."

	// HandOffReply announces transfer to a human once a quote request has
	// both product and location.
	HandOffReply = "Perfect! I am transferring you to our sales department now, a human agent will continue from here."

	// GreetingPrefix opens the very first reply of a session.
	GreetingPrefix = "Hello! Welcome to Cemear."

	// ForwardingSuffix nudges quote requests towards completing the flow.
	ForwardingSuffix = "Could you tell me the product and your location so I can forward your request to the right team?"
)

// ContainsEscalation reports whether the text carries the escalation marker,
// case-insensitively. Kept as the compatibility fallback for composer output
// that is not structurally flagged.
func ContainsEscalation(text string) bool {
	return strings.Contains(strings.ToLower(text), EscalationPhrase)
}
