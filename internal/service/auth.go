package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAuthDisabled means admin credentials are not configured; the
	// console fails closed.
	ErrAuthDisabled = errors.New("admin access not configured")
	// ErrInvalidCredentials means the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const tokenTTL = 24 * time.Hour

// AuthService guards the admin console with a bcrypt-checked password and
// short-lived HS256 tokens.
type AuthService struct {
	passwordHash string
	jwtSecret    string
	logger       *logrus.Logger
}

func NewAuthService(passwordHash, jwtSecret string) *AuthService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if passwordHash == "" || jwtSecret == "" {
		logger.Warn("Admin credentials not configured, console disabled")
	}

	return &AuthService{
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		logger:       logger,
	}
}

// Enabled reports whether admin login is possible at all.
func (s *AuthService) Enabled() bool {
	return s.passwordHash != "" && s.jwtSecret != ""
}

// Login checks the admin password and issues a token.
func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Warn("Admin login rejected")
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign admin token")
		return "", err
	}

	s.logger.Info("Admin logged in")
	return signed, nil
}

// Secret exposes the signing key for the HTTP middleware.
func (s *AuthService) Secret() string {
	return s.jwtSecret
}
