package models

// ChatRequest is a free-text question for the AI assistant.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the assistant's answer.
type ChatResponse struct {
	Response string `json:"response"`
}
