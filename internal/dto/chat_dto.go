package dto

// ChatRequest is validated in the service so a missing prompt and a missing
// email keep their distinct error messages.
type ChatRequest struct {
	Prompt string `json:"prompt"`
	Email  string `json:"email"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
