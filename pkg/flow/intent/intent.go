package intent

import "strings"

// Intent is a resolved user intention from the closed label set.
type Intent string

const (
	IntentGreeting         Intent = "GREETING"
	IntentQuoteRequest     Intent = "QUOTE_REQUEST"
	IntentProductQuestion  Intent = "PRODUCT_QUESTION"
	IntentJobInquiry       Intent = "JOB_INQUIRY"
	IntentOutOfRegion      Intent = "OUT_OF_REGION"
	IntentFlowContinuation Intent = "FLOW_CONTINUATION"
	IntentFarewell         Intent = "FAREWELL"
	IntentConfirmation     Intent = "CONFIRMATION"
	IntentOther            Intent = "OTHER"

	// IntentUnknown marks classifier output that matched no known label.
	// Downstream stage resolution treats it like any mid-conversation turn.
	IntentUnknown Intent = "UNKNOWN"
)

var known = map[Intent]bool{
	IntentGreeting:         true,
	IntentQuoteRequest:     true,
	IntentProductQuestion:  true,
	IntentJobInquiry:       true,
	IntentOutOfRegion:      true,
	IntentFlowContinuation: true,
	IntentFarewell:         true,
	IntentConfirmation:     true,
	IntentOther:            true,
}

// Parse normalizes a raw classifier label. Anything outside the closed set
// becomes IntentUnknown rather than silently mismatching downstream.
func Parse(raw string) Intent {
	label := Intent(strings.ToUpper(strings.TrimSpace(raw)))
	if known[label] {
		return label
	}
	return IntentUnknown
}

func (i Intent) String() string {
	return string(i)
}
