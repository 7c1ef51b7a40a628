package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeTurnCompleted     = "TURN_COMPLETED"
	TypeKnowledgeIngested = "KNOWLEDGE_INGESTED"
)

// NewTurnCompleted records one finished conversational turn for the
// experiment/metrics pipeline.
func NewTurnCompleted(sessionId, turnId uuid.UUID, intentLabel, stage string, grounded bool, latency time.Duration) Event {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"turn_id":    turnId.String(),
			"intent":     intentLabel,
			"stage":      stage,
			"grounded":   grounded,
			"latency_ms": latency.Milliseconds(),
		},
		OccurredAt: time.Now(),
	}
}

// NewKnowledgeIngested records a completed ingestion batch.
func NewKnowledgeIngested(origin string, chunks int) Event {
	return BaseEvent{
		Type: TypeKnowledgeIngested,
		Data: map[string]interface{}{
			"origin": origin,
			"chunks": chunks,
		},
		OccurredAt: time.Now(),
	}
}
