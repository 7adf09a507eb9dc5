package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/geeked101/bus-book/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore stores users in memory
type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
	getErr  error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (f *fakeUserStore) Create(user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return models.ErrUserExists
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = "user"
	}
	copied := *user
	f.byEmail[user.Email] = &copied
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, models.ErrInvalidCredentials
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByID(id uuid.UUID) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, models.ErrInvalidCredentials
	}
	copied := *user
	return &copied, nil
}

// fakeGoogleVerifier returns a fixed identity
type fakeGoogleVerifier struct {
	email string
	name  string
	err   error
}

func (f *fakeGoogleVerifier) Verify(idToken string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return f.email, f.name, nil
}

func newAuthService(users UserStore, google GoogleVerifier) *AuthService {
	jwtService := jwt.NewService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	// Minimum cost keeps the hash rounds out of the test's runtime
	return NewAuthService(users, jwtService, google, 4, testLogger())
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{})

		resp, err := svc.Register(&models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "alice", resp.User.Username)
		assert.Equal(t, "user", resp.User.Role)

		// Password is stored hashed
		stored := users.byEmail["alice@example.com"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "supersecret", stored.PasswordHash)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{})

		req := &models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "supersecret"}
		_, err := svc.Register(req)
		require.NoError(t, err)

		_, err = svc.Register(req)
		assert.ErrorIs(t, err, models.ErrUserExists)
	})

	t.Run("Weak Password", func(t *testing.T) {
		svc := newAuthService(newFakeUserStore(), &fakeGoogleVerifier{})

		_, err := svc.Register(&models.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "short",
		})
		assert.ErrorIs(t, err, models.ErrInvalidRequest)
	})
}

func TestLogin(t *testing.T) {
	setup := func(t *testing.T) (*AuthService, *fakeUserStore) {
		t.Helper()
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{})
		_, err := svc.Register(&models.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "supersecret",
		})
		require.NoError(t, err)
		return svc, users
	}

	t.Run("Success", func(t *testing.T) {
		svc, _ := setup(t)

		resp, err := svc.Login(&models.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice@example.com", resp.User.Email)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(&models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(&models.LoginRequest{Email: "ghost@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Google-Only Account Has No Password", func(t *testing.T) {
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{email: "bob@example.com", name: "Bob"})

		_, err := svc.GoogleLogin(&models.GoogleLoginRequest{Token: "google-token"})
		require.NoError(t, err)

		_, err = svc.Login(&models.LoginRequest{Email: "bob@example.com", Password: "anything"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestGoogleLogin(t *testing.T) {
	t.Run("Creates Account On First Sight", func(t *testing.T) {
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{email: "bob@example.com", name: "Bob"})

		resp, err := svc.GoogleLogin(&models.GoogleLoginRequest{Token: "google-token"})
		require.NoError(t, err)
		assert.Equal(t, "Bob", resp.User.Username)
		assert.NotNil(t, users.byEmail["bob@example.com"])

		// Second login reuses the account
		again, err := svc.GoogleLogin(&models.GoogleLoginRequest{Token: "google-token"})
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, again.User.ID)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		svc := newAuthService(newFakeUserStore(), &fakeGoogleVerifier{err: fmt.Errorf("token expired")})

		_, err := svc.GoogleLogin(&models.GoogleLoginRequest{Token: "bad-token"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Lookup Failure Does Not Create Account", func(t *testing.T) {
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{email: "bob@example.com", name: "Bob"})

		_, err := svc.GoogleLogin(&models.GoogleLoginRequest{Token: "google-token"})
		require.NoError(t, err)

		// A transient store failure for an existing user must surface
		// as-is, not fall through to a duplicate create.
		storeErr := fmt.Errorf("connection reset")
		users.getErr = storeErr

		_, err = svc.GoogleLogin(&models.GoogleLoginRequest{Token: "google-token"})
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, models.ErrUserExists)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{})

		registered, err := svc.Register(&models.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "supersecret",
		})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(registered.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.Token)
		assert.Equal(t, registered.User.ID, refreshed.User.ID)
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		users := newFakeUserStore()
		svc := newAuthService(users, &fakeGoogleVerifier{})

		registered, err := svc.Register(&models.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "supersecret",
		})
		require.NoError(t, err)

		_, err = svc.Refresh(registered.Token)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestGoogleTokenVerifier(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "some-token", r.URL.Query().Get("id_token"))
			fmt.Fprint(w, `{"email":"Alice@Example.com","email_verified":"true","name":"Alice"}`)
		}))
		defer server.Close()

		verifier := &googleTokenVerifier{client: server.Client(), endpoint: server.URL}
		email, name, err := verifier.Verify("some-token")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
		assert.Equal(t, "Alice", name)
	})

	t.Run("Unverified Email", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"email":"alice@example.com","email_verified":"false"}`)
		}))
		defer server.Close()

		verifier := &googleTokenVerifier{client: server.Client(), endpoint: server.URL}
		_, _, err := verifier.Verify("some-token")
		assert.Error(t, err)
	})

	t.Run("Bad Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		verifier := &googleTokenVerifier{client: server.Client(), endpoint: server.URL}
		_, _, err := verifier.Verify("some-token")
		assert.Error(t, err)
	})
}
