// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ChatRequest represents the request body of a chat message.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
	// Assistant is the coach key, "hellen" or "george".
	Assistant string `json:"assistant"`
}

// ListMessagesQuery represents the query parameters of the admin message listing.
type ListMessagesQuery struct {
	// Pointers so an explicit zero is validated instead of read as absent.
	Page      *int   `form:"page" binding:"omitempty,min=1"`
	Limit     *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	SessionID string `form:"sessionId"`
}
