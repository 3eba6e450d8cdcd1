package service

import (
	"fmt"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/crypto"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	TourService    TourService
	ReviewService  ReviewService
	BookingService BookingService
	AppInfoService AppInfoService
}

// Adapters groups the outbound integrations used by the services.
type Adapters struct {
	Mail    adapter.MailAdapter
	Payment adapter.PaymentAdapter
}

func NewServices(repositories *store.Repositories, adapters Adapters, cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	passwordHasher := crypto.NewPasswordHasher(cfg.PasswordHashCost)
	resetTokens := crypto.NewResetTokenGenerator(cfg.ResetTokenDuration, nil)

	return &Services{
		AuthService:    NewAuthService(repositories.UserRepository, passwordHasher, resetTokens, adapters.Mail, cfg, logger),
		UserService:    NewUserService(repositories.UserRepository, logger),
		TourService:    NewTourService(repositories.TourRepository, logger),
		ReviewService:  NewReviewService(repositories.ReviewRepository, logger),
		BookingService: NewBookingService(repositories.BookingRepository, repositories.TourRepository, adapters.Payment, logger),
		AppInfoService: appInfoService,
	}, nil
}
