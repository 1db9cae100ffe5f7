package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"bookgpt-be/internal/dto"
	"bookgpt-be/internal/pkg/serverutils"
	"bookgpt-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	lastRequest *dto.ChatRequest
	response    *dto.ChatResponse
}

func (s *stubChatService) HandleTurn(_ context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	s.lastRequest = request
	return s.response, nil
}

func newChatTestApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(svc).RegisterRoutes(api)
	return app
}

func TestChatEndpoint(t *testing.T) {
	svc := &stubChatService{
		response: &dto.ChatResponse{
			UserId:      "u1",
			BotMessage:  "Here you go",
			Suggestions: []string{"Start Over"},
			Books:       []store.BookRecord{},
		},
	}
	app := newChatTestApp(svc)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"user_id":"u1","message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool             `json:"success"`
		Data    dto.ChatResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Here you go", body.Data.BotMessage)

	require.NotNil(t, svc.lastRequest)
	assert.Equal(t, "u1", svc.lastRequest.UserId)
	assert.Equal(t, "hello", svc.lastRequest.Message)
}

func TestChatEndpointRequiresUserId(t *testing.T) {
	svc := &stubChatService{response: &dto.ChatResponse{}}
	app := newChatTestApp(svc)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, svc.lastRequest)
}

func TestChatEndpointAllowsEmptyMessage(t *testing.T) {
	svc := &stubChatService{
		response: &dto.ChatResponse{UserId: "u1", BotMessage: "Hi!", Suggestions: []string{}, Books: []store.BookRecord{}},
	}
	app := newChatTestApp(svc)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"user_id":"u1","message":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
