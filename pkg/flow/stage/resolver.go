package stage

import (
	"fmt"
	"strings"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/intent"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/response"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/slots"
)

// Stage is the discrete progress marker of a session's scripted sales flow.
type Stage string

const (
	StageStart          Stage = "START"
	StageInfoCollection Stage = "INFO_COLLECTION"
	StageMiddle         Stage = "MIDDLE"
	StageDone           Stage = "DONE"
)

const unspecifiedVolume = "unspecified volume"

const confirmationTemplate = "Confirmed! Your request for %s of %s in %s has been registered. Our team will contact you shortly."

// Input carries everything the resolver needs. Slots must already be the
// merged view of the session (previous turns overlaid with the current
// extraction).
type Input struct {
	Intent           intent.Intent
	Slots            slots.SlotSet
	Composed         response.Composed
	SnippetCount     int
	FirstInteraction bool
}

// Result is the final reply text plus the stage the session moves to.
type Result struct {
	Reply string
	Stage Stage
}

// Resolve is a pure function in two passes: the reply text is settled
// first, then the stage is derived from the FINAL text. The reply rules
// are mutually exclusive and checked in fixed order: escalation, human
// hand-off, confirmation override, then the adorned composed reply.
func Resolve(in Input) Result {
	reply := resolveReply(in)

	return Result{
		Reply: reply,
		Stage: resolveStage(in, reply),
	}
}

func resolveReply(in Input) string {
	complete := in.Slots.HasProduct() && in.Slots.HasLocation()

	switch {
	case !in.Composed.Grounded || response.ContainsEscalation(in.Composed.Text) || in.SnippetCount == 0:
		return response.EscalationReply

	case in.Intent == intent.IntentQuoteRequest && complete:
		return response.HandOffReply

	case in.Intent == intent.IntentConfirmation && complete:
		volume := unspecifiedVolume
		if in.Slots.ApproximateVolume != nil {
			volume = *in.Slots.ApproximateVolume
		}
		return fmt.Sprintf(confirmationTemplate, volume, *in.Slots.Product, *in.Slots.Location)

	default:
		reply := in.Composed.Text
		if in.FirstInteraction {
			reply = response.GreetingPrefix + " " + reply
		}
		if in.Intent == intent.IntentQuoteRequest {
			reply = reply + " " + response.ForwardingSuffix
		}
		return strings.TrimSpace(reply)
	}
}

func resolveStage(in Input, finalReply string) Stage {
	complete := in.Slots.HasProduct() && in.Slots.HasLocation()

	switch {
	// Escalation ends the flow no matter what the classifier said.
	case response.ContainsEscalation(finalReply):
		return StageDone

	case in.Intent == intent.IntentGreeting && in.FirstInteraction:
		return StageStart

	case in.Intent == intent.IntentQuoteRequest && complete:
		return StageDone

	case in.Intent == intent.IntentQuoteRequest:
		return StageInfoCollection

	case in.Intent == intent.IntentFarewell, in.Intent == intent.IntentOutOfRegion:
		return StageDone

	case in.Intent == intent.IntentConfirmation && complete:
		return StageDone

	default:
		return StageMiddle
	}
}
