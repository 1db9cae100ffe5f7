package service

import (
	"context"
	"testing"

	"bookgpt-be/internal/dto"
	"bookgpt-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newTestAdminService(t *testing.T, email, password string) IAdminService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	log := logger.NewZapLogger(t.TempDir()+"/app.log", false)
	return NewAdminService(email, string(hash), "test-secret", nil, log)
}

func TestAdminLogin(t *testing.T) {
	svc := newTestAdminService(t, "admin@example.com", "hunter2")

	res, err := svc.Login(context.Background(), &dto.AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("empty token")
	}

	token, err := jwt.Parse(res.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["email"] != "admin@example.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
}

func TestAdminLoginRejections(t *testing.T) {
	svc := newTestAdminService(t, "admin@example.com", "hunter2")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "wrong"},
		{"wrong email", "other@example.com", "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.AdminLoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			fiberErr, ok := err.(*fiber.Error)
			if !ok || fiberErr.Code != fiber.StatusUnauthorized {
				t.Errorf("err = %v, want 401", err)
			}
		})
	}
}

func TestAdminLoginUnconfigured(t *testing.T) {
	log := logger.NewZapLogger(t.TempDir()+"/app.log", false)
	svc := NewAdminService("", "", "secret", nil, log)

	_, err := svc.Login(context.Background(), &dto.AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "hunter2",
	})
	fiberErr, ok := err.(*fiber.Error)
	if !ok || fiberErr.Code != fiber.StatusServiceUnavailable {
		t.Errorf("err = %v, want 503", err)
	}
}

func TestAnalyticsSummaryWithoutStorage(t *testing.T) {
	svc := newTestAdminService(t, "admin@example.com", "hunter2")

	_, err := svc.AnalyticsSummary(context.Background())
	fiberErr, ok := err.(*fiber.Error)
	if !ok || fiberErr.Code != fiber.StatusServiceUnavailable {
		t.Errorf("err = %v, want 503", err)
	}
}
