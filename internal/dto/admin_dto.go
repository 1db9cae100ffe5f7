package dto

import "bookgpt-be/internal/pkg/logger"

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type AnalyticsSummaryResponse struct {
	TotalEvents  int64            `json:"total_events"`
	CountsByType map[string]int64 `json:"counts_by_type"`
	CountsByDay  []DailyCount     `json:"counts_by_day"`
}

type DailyCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

type AdminLogsResponse struct {
	Logs []logger.LogEntry `json:"logs"`
}
