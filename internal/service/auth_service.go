package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"
)

// AuthService asks the external auth microservice who a token belongs to.
// This core never inspects credentials itself; it only turns the auth
// response into a Principal for the mutating operations.
type AuthService struct {
	authURL string
	client  *http.Client
}

type AuthUser struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Login       string   `json:"login"`
	Enabled     bool     `json:"enabled"`
}

func NewAuthService(authURL string) *AuthService {
	return &AuthService{
		authURL: authURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ValidateToken resolves the token against /users/current on the auth
// service and returns the acting principal.
func (a *AuthService) ValidateToken(token string) (Principal, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/users/current", a.authURL), nil)
	if err != nil {
		return Principal{}, err
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return Principal{}, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Principal{}, errors.New("invalid token")
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return Principal{}, err
	}

	if !user.Enabled {
		return Principal{}, errors.New("user disabled")
	}

	return Principal{
		ID:    user.ID,
		Name:  user.Name,
		Admin: slices.Contains(user.Permissions, "admin"),
	}, nil
}
