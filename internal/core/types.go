package core

const (
	AppName          = "askfolio"
	AppUserAgent     = "askfolio/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/askfolio"
	AppVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Passage is one retrieval unit cut from a source document.
type Passage struct {
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
	Index   int    `json:"index"`
}

// EmbeddedPassage pairs a passage with its vector. Built once per index.
type EmbeddedPassage struct {
	Passage
	Vector []float32
}

// Turn is one question/answer exchange.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length,omitempty"`
}
