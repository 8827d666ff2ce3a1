package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence.
// Codes are scoped to an email address and a purpose, so a password-reset
// code can never verify an email address and vice versa. Email is the
// canonical delivery channel; accounts with a phone on record get the code
// over SMS as well.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	users           domain.UserRepository
	redisClient     *redis.Client
	config          OTPConfig
	logger          *slog.Logger
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(
	notificationSvc domain.NotificationService,
	users domain.UserRepository,
	redisClient *redis.Client,
	config OTPConfig,
	logger *slog.Logger,
) domain.OTPService {
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		users:           users,
		redisClient:     redisClient,
		config:          config,
		logger:          logger,
	}
}

func otpKey(email string, purpose domain.OTPPurpose) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func attemptsKey(email string, purpose domain.OTPPurpose) string {
	return fmt.Sprintf("otp:att:%s:%s", purpose, email)
}

func resendKey(email string, purpose domain.OTPPurpose) string {
	return fmt.Sprintf("otp:res:%s:%s", purpose, email)
}

// Generate implements domain.OTPService
func (s *OTPServiceImpl) Generate(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPRequest, error) {
	if canResend, waitTime, _ := s.CanResend(ctx, email, purpose); !canResend {
		return nil, fmt.Errorf("%w: wait %d seconds", domain.ErrOTPResendLimit, waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.redisClient.Set(ctx, otpKey(email, purpose), code, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	if err := s.redisClient.Set(ctx, attemptsKey(email, purpose), 0, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialize attempts counter: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey(email, purpose), 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	otpReq := &domain.OTPRequest{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
		Attempts:  0,
	}

	subject, body := s.message(purpose, code)
	if err := s.notificationSvc.SendEmail(email, subject, body); err != nil {
		// Clean up Redis entries if delivery fails
		s.redisClient.Del(ctx, otpKey(email, purpose), attemptsKey(email, purpose), resendKey(email, purpose))
		return nil, fmt.Errorf("failed to send OTP email: %w", err)
	}

	// SMS is best effort: a failed text never invalidates the emailed code.
	if user, err := s.users.FindByEmail(ctx, email); err == nil && user.Phone != "" {
		sms := fmt.Sprintf("Your Emetals code is %s", code)
		if err := s.notificationSvc.SendSMS(user.Phone, sms); err != nil {
			s.logger.Warn("otp sms delivery failed", "purpose", purpose, "error", err)
		}
	}

	return otpReq, nil
}

// Verify implements domain.OTPService
func (s *OTPServiceImpl) Verify(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
	oKey := otpKey(email, purpose)
	aKey := attemptsKey(email, purpose)

	attempts, err := s.redisClient.Incr(ctx, aKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts == 1 {
		// The INCR recreates the counter when it expired with the code;
		// it must never outlive the code itself.
		s.redisClient.Expire(ctx, aKey, s.config.TTL)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, oKey, aKey)
		return domain.ErrOTPMaxAttempts
	}

	storedCode, err := s.redisClient.Get(ctx, oKey).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	if storedCode != code {
		return domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, oKey, aKey)
	return nil
}

// CanResend implements domain.OTPService
func (s *OTPServiceImpl) CanResend(ctx context.Context, email string, purpose domain.OTPPurpose) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(email, purpose)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// TTL <= 0 means the key is gone or has expired
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

func (s *OTPServiceImpl) message(purpose domain.OTPPurpose, code string) (subject, body string) {
	minutes := int(s.config.TTL.Minutes())
	switch purpose {
	case domain.PurposePasswordReset:
		return "Reset your Emetals password",
			fmt.Sprintf("Your password reset code is: %s. Valid for %d minutes.", code, minutes)
	default:
		return "Verify your Emetals account",
			fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, minutes)
	}
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
