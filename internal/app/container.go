package app

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/CianCode/Emetals-Web-App/domain"
	"github.com/CianCode/Emetals-Web-App/internal/config"
	"github.com/CianCode/Emetals-Web-App/internal/flow"
	"github.com/CianCode/Emetals-Web-App/internal/infrastructure/auth"
	"github.com/CianCode/Emetals-Web-App/internal/infrastructure/database"
	"github.com/CianCode/Emetals-Web-App/internal/infrastructure/notifications"
	"github.com/CianCode/Emetals-Web-App/internal/infrastructure/repositories"
	"github.com/CianCode/Emetals-Web-App/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService

	// Flow persistence
	FlowStore *flow.Store
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{Config: cfg, Logger: logger}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()

	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(
		c.Config.RedisAddr,
		c.Config.RedisPassword,
		c.Config.RedisDB,
	).Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	// Sessions live at most as long as a remembered login.
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.SessionRememberTTL)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.SessionSecret,
		c.Config.SessionIssuer,
		c.Config.SessionRememberTTL,
	)
	c.NotificationSvc = notifications.NewNotifier(
		notifications.SMTPSettings{
			Host: c.Config.SMTPHost,
			Port: c.Config.SMTPPort,
			User: c.Config.SMTPUser,
			Pass: c.Config.SMTPPass,
			From: c.Config.SMTPFrom,
		},
		notifications.TwilioSettings{
			AccountSID: c.Config.TwilioSID,
			AuthToken:  c.Config.TwilioToken,
			FromNumber: c.Config.TwilioFrom,
		},
	)

	otpConfig := services.OTPConfig{
		Length:       c.Config.OTPLength,
		TTL:          c.Config.OTPTTL,
		MaxAttempts:  c.Config.OTPMaxAttempts,
		ResendWindow: c.Config.OTPResendWindow,
	}
	c.OTPSvc = services.NewOTPService(c.NotificationSvc, c.UserRepo, c.RedisClient, otpConfig, c.Logger)

	c.PolicySvc = services.NewPolicyService(c.Casbin.E)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Config.SessionTTL,
		c.Config.SessionRememberTTL,
	)

	// Abandoned flows expire on the OTP TTL; there is nothing worth keeping
	// in a flow once its code is dead.
	c.FlowStore = flow.NewStore(c.RedisClient, c.Config.OTPTTL)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
