package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/badoux/checkmail"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/donation-service/internal/config"
	"github.com/Dan9191/donation-service/internal/models"
)

const tokenTTL = 30 * time.Minute

// Store is the persistence surface the service needs
type Store interface {
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	CreateCause(cause *models.Cause) error
	FindCauseByID(id int64) (*models.Cause, error)
	ListCauses() ([]models.Cause, error)
	UpdateCause(cause *models.Cause) error
	DeleteCause(id int64) error
	CreateDonation(donation *models.Donation) error
	ListDonations() ([]models.Donation, error)
}

// PaymentProvider starts hosted checkout sessions and verifies webhook
// deliveries. ParseEvent must verify the signature against the raw payload
// bytes before any parsing.
type PaymentProvider interface {
	CreateCheckoutSession(causeID int64) (string, error)
	ParseEvent(payload []byte, sigHeader string) (*models.PaymentEvent, error)
}

// ReceiptSender delivers donation receipts to donors
type ReceiptSender interface {
	SendDonationReceipt(to, username, causeName string, amount float64) error
}

// Service handles business logic
type Service struct {
	store    Store
	provider PaymentProvider
	mailer   ReceiptSender
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(store Store, provider PaymentProvider, mailer ReceiptSender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, provider: provider, mailer: mailer, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, models.ErrInvalidEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed bearer token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.store.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// VerifyToken checks the token signature and expiry and returns the encoded
// user id. Any decode or validation failure collapses to ErrInvalidToken.
func (s *Service) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, models.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, models.ErrInvalidToken
	}
	return userID, nil
}

// Authenticate resolves a bearer token to a persisted user. Bad token and
// unknown user both surface as ErrUnauthorized so callers cannot probe for
// which accounts exist.
func (s *Service) Authenticate(tokenString string) (*models.User, error) {
	userID, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
