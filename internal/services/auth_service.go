package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/geeked101/bus-book/pkg/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the subset of the user repository the auth flow needs.
type UserStore interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
}

// GoogleVerifier validates a Google ID token and returns the holder's
// email and name.
type GoogleVerifier interface {
	Verify(idToken string) (email, name string, err error)
}

// AuthService handles registration, login and token issuance.
type AuthService struct {
	users      UserStore
	jwtService *jwt.Service
	google     GoogleVerifier
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, jwtService *jwt.Service, google GoogleVerifier, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		google:     google,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new account and returns a token pair.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "user",
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return s.issueTokens(user)
}

// Login verifies credentials and returns a token pair.
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		// Google-only account, no password to check
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// GoogleLogin verifies a Google ID token and signs the holder in, creating
// an account on first sight.
func (s *AuthService) GoogleLogin(req *models.GoogleLoginRequest) (*models.AuthResponse, error) {
	email, name, err := s.google.Verify(req.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidCredentials, err.Error())
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Only a missing account means first sight. Anything else is a
		// store failure and must not trigger a duplicate create.
		if !errors.Is(err, models.ErrInvalidCredentials) {
			return nil, err
		}
		if name == "" {
			name = email
		}
		user = &models.User{
			Username: name,
			Email:    email,
			Role:     "user",
		}
		if createErr := s.users.Create(user); createErr != nil {
			return nil, createErr
		}
		s.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("User created via Google sign-in")
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidCredentials, err.Error())
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &models.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user.PublicView(),
	}, nil
}

// googleTokenVerifier validates ID tokens against Google's tokeninfo
// endpoint.
type googleTokenVerifier struct {
	client   *http.Client
	endpoint string
}

// NewGoogleTokenVerifier creates a verifier backed by Google's tokeninfo API
func NewGoogleTokenVerifier() GoogleVerifier {
	return &googleTokenVerifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: "https://oauth2.googleapis.com/tokeninfo",
	}
}

func (v *googleTokenVerifier) Verify(idToken string) (string, string, error) {
	resp, err := v.client.Get(v.endpoint + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return "", "", fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var payload struct {
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if payload.Email == "" {
		return "", "", fmt.Errorf("tokeninfo response has no email")
	}
	if payload.EmailVerified != "true" {
		return "", "", fmt.Errorf("email is not verified")
	}

	return strings.ToLower(payload.Email), payload.Name, nil
}
