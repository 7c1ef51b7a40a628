package dto

type UploadKnowledgeRequest struct {
	Origin   string                 `json:"origin" validate:"required,max=255"`
	Category string                 `json:"category,omitempty" validate:"omitempty,oneof=products_services institutional"`
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// PublishEmbedKnowledgeMessage is the queue payload handed to the
// embedding consumer. Chunks are already split at publish time.
type PublishEmbedKnowledgeMessage struct {
	Origin   string                 `json:"origin"`
	Category string                 `json:"category,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Chunks   []string               `json:"chunks"`
}

type UploadKnowledgeResponse struct {
	Origin string `json:"origin"`
	Chunks int    `json:"chunks"`
	Queued bool   `json:"queued"`
}
