package domain

// AIFallbackMessage replaces AI-generated text when the upstream call fails.
const AIFallbackMessage = "Unable to get AI suggestions at this time. Please try again later."

// Chat roles accepted by the chat passthrough.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a single-turn prompt with an optional system context.
type CompletionRequest struct {
	Prompt  string
	Context string
	Model   string
}

// SourceType tags an assistant citation.
type SourceType string

const (
	SourceFileCitation SourceType = "file_citation"
	SourceFilePath     SourceType = "file_path"
)

// Source is a retrieval citation attached to an assistant reply.
type Source struct {
	Type     SourceType `json:"type"`
	Text     string     `json:"text"`
	Filename string     `json:"filename,omitempty"`
	Quote    string     `json:"quote,omitempty"`
	FileID   string     `json:"file_id,omitempty"`
}

type AssistantReply struct {
	Completion string   `json:"completion"`
	Sources    []Source `json:"sources"`
}
