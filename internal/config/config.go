package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	Secret      string `yaml:"secret"`
	Issuer      string `yaml:"issuer"`
	CookieName  string `yaml:"cookie_name"`
	TTL         string `yaml:"ttl"`
	RememberTTL string `yaml:"remember_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type SMTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	From string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	OTP      OTPConfig      `yaml:"otp"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

// RouteClasses holds the prefix lists the route guard matches against.
type RouteClasses struct {
	Public    []string `yaml:"public"`
	AuthOnly  []string `yaml:"authOnly"`
	Protected []string `yaml:"protected"`
	Admin     []string `yaml:"admin"`
	Bypass    []string `yaml:"bypass"`
}

type Config struct {
	Port               string
	GinMode            string
	BaseURL            string
	DSN                string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	SessionSecret      string
	SessionIssuer      string
	SessionCookie      string
	SessionTTL         time.Duration
	SessionRememberTTL time.Duration
	OTPTTL             time.Duration
	OTPLength          int
	OTPMaxAttempts     int
	OTPResendWindow    time.Duration
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPass           string
	SMTPFrom           string
	TwilioSID          string
	TwilioToken        string
	TwilioFrom         string
	CasbinModelPath    string
	Routes             RouteClasses
	LoginRatePerMin    int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"), "config/routes.yml")
}

func LoadFrom(configPath, routesPath string) (*Config, error) {
	configFile, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	rememberTTL, err := time.ParseDuration(configFile.Session.RememberTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session remember TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	routes, err := loadRouteClasses(routesPath)
	if err != nil {
		// Missing routes file falls back to the built-in route classes.
		routes = DefaultRouteClasses()
	}

	cookieName := configFile.Session.CookieName
	if cookieName == "" {
		cookieName = "emetals_session"
	}

	return &Config{
		Port:               fmt.Sprintf("%d", configFile.App.Port),
		GinMode:            configFile.App.GinMode,
		BaseURL:            configFile.App.BaseURL,
		DSN:                configFile.Database.DSN,
		RedisAddr:          configFile.Redis.Addr,
		RedisPassword:      configFile.Redis.Password,
		RedisDB:            configFile.Redis.DB,
		SessionSecret:      env("SESSION_SECRET", configFile.Session.Secret),
		SessionIssuer:      configFile.Session.Issuer,
		SessionCookie:      cookieName,
		SessionTTL:         sessTTL,
		SessionRememberTTL: rememberTTL,
		OTPTTL:             otpTTL,
		OTPLength:          configFile.OTP.Length,
		OTPMaxAttempts:     configFile.OTP.MaxAttempts,
		OTPResendWindow:    resWnd,
		SMTPHost:           configFile.SMTP.Host,
		SMTPPort:           configFile.SMTP.Port,
		SMTPUser:           configFile.SMTP.User,
		SMTPPass:           env("SMTP_PASS", configFile.SMTP.Pass),
		SMTPFrom:           configFile.SMTP.From,
		TwilioSID:          configFile.Twilio.AccountSID,
		TwilioToken:        env("TWILIO_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:         configFile.Twilio.FromNumber,
		CasbinModelPath:    configFile.Casbin.ModelPath,
		Routes:             routes,
		LoginRatePerMin:    5,
	}, nil
}

// DefaultRouteClasses returns the storefront's built-in route classification.
func DefaultRouteClasses() RouteClasses {
	return RouteClasses{
		Public:    []string{"/", "/products", "/gold", "/silver", "/platinum", "/about", "/contact"},
		AuthOnly:  []string{"/login", "/register", "/forgot-password"},
		Protected: []string{"/dashboard", "/account", "/orders", "/portfolio"},
		Admin:     []string{"/admin"},
		Bypass:    []string{"/api/", "/_next/", "/static/"},
	}
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func loadRouteClasses(path string) (RouteClasses, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return RouteClasses{}, fmt.Errorf("could not read routes file: %w", err)
	}

	var routes struct {
		Routes RouteClasses `yaml:"routes"`
	}
	if err := yaml.Unmarshal(bytes, &routes); err != nil {
		return RouteClasses{}, fmt.Errorf("could not parse routes yaml: %w", err)
	}
	return routes.Routes, nil
}
