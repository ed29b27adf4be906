// FILE: internal/service/oauth_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"retail-storefront/internal/config"
	"retail-storefront/internal/entity"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// IOAuthService runs the Google login handshake. There is no user table:
// the fetched profile goes straight into the visitor's session.
type IOAuthService interface {
	BeginLogin() (url string, state string)
	HandleCallback(ctx context.Context, code string) (*entity.UserProfile, error)
}

type oauthService struct {
	googleConf *oauth2.Config
}

func NewOAuthService(cfg config.OAuthConfig) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientId,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	log.Printf("[OAuth Service] Initialized, redirect URL: %s", conf.RedirectURL)

	return &oauthService{googleConf: conf}
}

// BeginLogin returns the provider URL plus the random state the caller must
// park in the session and check again on the way back.
func (s *oauthService) BeginLogin() (string, string) {
	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), state
}

func (s *oauthService) HandleCallback(ctx context.Context, code string) (*entity.UserProfile, error) {
	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		log.Printf("[OAuth Service] ERROR - Code exchange failed: %v", err)
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[OAuth Service] ERROR - Failed getting user info: %v", err)
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading userinfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, string(content))
	}

	var googleUser struct {
		Id      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		log.Printf("[OAuth Service] ERROR - Failed to parse user info: %v", err)
		return nil, fmt.Errorf("parse user info: %w", err)
	}

	log.Printf("[OAuth Service] ✅ Authenticated %s", googleUser.Email)

	return &entity.UserProfile{
		Email:   googleUser.Email,
		Name:    googleUser.Name,
		Picture: googleUser.Picture,
	}, nil
}
