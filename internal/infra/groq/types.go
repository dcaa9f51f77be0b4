package groq

import "fmt"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Choice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`
}

type CompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// APIから返るエラーの形
type ErrorResponse struct {
	StatusCode int `json:"-"`
	Err        struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("groq: status %d: %s", e.StatusCode, e.Err.Message)
}
