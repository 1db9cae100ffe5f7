package dto

import "bookgpt-be/pkg/store"

type ChatRequest struct {
	UserId  string `json:"user_id" validate:"required"`
	Message string `json:"message"`
}

type ChatResponse struct {
	UserId      string             `json:"user_id"`
	BotMessage  string             `json:"bot_message"`
	Suggestions []string           `json:"suggestions"`
	Books       []store.BookRecord `json:"books"`
}
