package service

import (
	"context"
	"time"

	"bookgpt-be/internal/dto"
	"bookgpt-be/internal/pkg/logger"
	"bookgpt-be/internal/repository/implementation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const analyticsWindowDays = 30

// IAdminService backs the admin dashboard: login, analytics rollups and
// application log access.
type IAdminService interface {
	Login(ctx context.Context, request *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	AnalyticsSummary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error)
	Logs(level string, limit, offset int) (*dto.AdminLogsResponse, error)
	LogById(id string) (*logger.LogEntry, error)
}

type adminService struct {
	email        string
	passwordHash string
	jwtSecret    string
	analytics    *implementation.AnalyticsRepository
	log          logger.ILogger
}

func NewAdminService(
	email string,
	passwordHash string,
	jwtSecret string,
	analytics *implementation.AnalyticsRepository,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		email:        email,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		analytics:    analytics,
		log:          log,
	}
}

func (as *adminService) Login(ctx context.Context, request *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if as.email == "" || as.passwordHash == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "admin access not configured")
	}

	if request.Email != as.email {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(as.passwordHash), []byte(request.Password)); err != nil {
		as.log.Warn("ADMIN", "Failed admin login attempt", map[string]interface{}{
			"email": request.Email,
		})
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	claims := jwt.MapClaims{
		"email": as.email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecret))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}

	as.log.Info("ADMIN", "Admin logged in", map[string]interface{}{
		"email": as.email,
	})
	return &dto.AdminLoginResponse{Token: signed}, nil
}

func (as *adminService) AnalyticsSummary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error) {
	if as.analytics == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "analytics storage not configured")
	}

	total, err := as.analytics.CountAll(ctx)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to count events")
	}
	byType, err := as.analytics.CountByType(ctx)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate events")
	}
	byDay, err := as.analytics.CountByDay(ctx, analyticsWindowDays)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate events")
	}

	daily := make([]dto.DailyCount, 0, len(byDay))
	for _, dc := range byDay {
		daily = append(daily, dto.DailyCount{Day: dc.Day, Count: dc.Count})
	}

	return &dto.AnalyticsSummaryResponse{
		TotalEvents:  total,
		CountsByType: byType,
		CountsByDay:  daily,
	}, nil
}

func (as *adminService) Logs(level string, limit, offset int) (*dto.AdminLogsResponse, error) {
	entries, err := as.log.GetLogs(level, limit, offset)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to read logs")
	}
	return &dto.AdminLogsResponse{Logs: entries}, nil
}

func (as *adminService) LogById(id string) (*logger.LogEntry, error) {
	entry, err := as.log.GetLogById(id)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "log entry not found")
	}
	return entry, nil
}
