package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	usermodel "nexload-backend/internal/domains/user/model"
	userrepo "nexload-backend/internal/domains/user/repository"
	"nexload-backend/pkg/cache"
	"nexload-backend/pkg/jwt"
)

const (
	stateKeyPrefix = "oauth_state:"
	stateExpiry    = 10 * time.Minute

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	ErrInvalidState = errors.New("invalid or expired oauth state")
)

// ServiceInterface is the Google OAuth session lifecycle contract.
type ServiceInterface interface {
	// LoginURL generates a state token and returns the Google consent
	// screen URL to redirect to.
	LoginURL(ctx context.Context) (string, error)

	// HandleCallback validates the state, exchanges the code, upserts
	// the user and mints a session token.
	HandleCallback(ctx context.Context, state, code string) (string, *usermodel.User, error)

	// CurrentUser resolves the session identity to a stored user.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*usermodel.User, error)
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type googleAuthService struct {
	oauth *oauth2.Config
	cache cache.Cache
	users userrepo.UserRepository
	jwt   *jwt.Manager
}

func NewGoogleAuthService(
	clientID, clientSecret, baseURL string,
	stateCache cache.Cache,
	users userrepo.UserRepository,
	jwtManager *jwt.Manager,
) ServiceInterface {
	return &googleAuthService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		cache: stateCache,
		users: users,
		jwt:   jwtManager,
	}
}

// =====================================================
// LOGIN
// =====================================================

func (s *googleAuthService) LoginURL(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}

	if err := s.cache.Set(ctx, stateKeyPrefix+state, true, stateExpiry); err != nil {
		return "", fmt.Errorf("failed to save oauth state: %w", err)
	}

	return s.oauth.AuthCodeURL(state), nil
}

// generateState returns a cryptographically secure random state.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// =====================================================
// CALLBACK
// =====================================================

// googleUserInfo is the subset of Google's userinfo response we keep.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *googleAuthService) HandleCallback(ctx context.Context, state, code string) (string, *usermodel.User, error) {
	// Step 1: Validate state (single use)
	if state == "" || code == "" {
		return "", nil, ErrInvalidState
	}

	found, err := s.cache.Exists(ctx, stateKeyPrefix+state)
	if err != nil {
		return "", nil, fmt.Errorf("failed to validate oauth state: %w", err)
	}
	if !found {
		return "", nil, ErrInvalidState
	}
	_ = s.cache.Delete(ctx, stateKeyPrefix+state)

	// Step 2: Exchange code for token
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	// Step 3: Fetch the Google profile
	info, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		return "", nil, err
	}

	// Step 4: Upsert the user record
	user, err := s.users.UpsertByGoogleID(ctx, &usermodel.User{
		GoogleID:    info.ID,
		DisplayName: info.Name,
		Email:       info.Email,
		Image:       info.Picture,
	})
	if err != nil {
		return "", nil, err
	}

	// Step 5: Mint the session token
	sessionToken, err := s.jwt.GenerateSessionToken(user.ID.String(), user.Email, user.DisplayName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return sessionToken, user, nil
}

// fetchGoogleUserInfo retrieves the profile from Google's userinfo
// endpoint using the freshly exchanged token.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// =====================================================
// CURRENT USER
// =====================================================

func (s *googleAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*usermodel.User, error) {
	return s.users.GetByID(ctx, userID)
}
