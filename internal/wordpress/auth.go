package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be refreshed.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmailExists indicates a registration conflict on the email.
	ErrEmailExists = errors.New("email already registered")
	// ErrUsernameExists indicates a registration conflict on the username.
	ErrUsernameExists = errors.New("username already registered")
)

// User is the profile shape returned to the frontend after auth calls.
type User struct {
	ID          int    `json:"id,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// Session bundles a bearer token with the user it belongs to. ExpiresAt is
// unix milliseconds, zero when the token payload could not be decoded.
type Session struct {
	User      User
	Token     string
	ExpiresAt int64
}

type jwtTokenResponse struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email"`
	UserNicename    string `json:"user_nicename"`
	UserDisplayName string `json:"user_display_name"`
	Message         string `json:"message"`
}

// Login exchanges credentials for a JWT via the WordPress JWT auth plugin,
// then fills in the profile from the users endpoint on a best-effort basis.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"username": email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/jwt-auth/v1/token", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jwt token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("jwt token: upstream status %d", resp.StatusCode)
	}

	var tokenResp jwtTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode jwt token: %w", err)
	}
	if tokenResp.Token == "" {
		return nil, errors.New("jwt response missing token")
	}

	session := &Session{
		User: User{
			Email:       tokenResp.UserEmail,
			DisplayName: firstNonEmpty(tokenResp.UserDisplayName, tokenResp.UserNicename),
		},
		Token:     tokenResp.Token,
		ExpiresAt: tokenExpiryMillis(tokenResp.Token),
	}

	// Profile fetch failures leave the token response fields in place.
	if user, err := c.fetchProfile(ctx, tokenResp.Token); err != nil {
		c.logger.Printf("fetch profile: %v", err)
	} else {
		if user.Email == "" {
			user.Email = session.User.Email
		}
		if user.DisplayName == "" {
			user.DisplayName = session.User.DisplayName
		}
		session.User = user
	}

	return session, nil
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a WooCommerce customer, then auto-logs-in to issue a
// token. A failed auto-login is not an error: registration already
// succeeded, and the returned session simply has no token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	payload, err := json.Marshal(map[string]string{
		"email":      email,
		"password":   in.Password,
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
		"username":   usernameFromEmail(email),
	})
	if err != nil {
		return nil, err
	}

	req, err := c.newWCRequest(ctx, http.MethodPost, "/wp-json/wc/v3/customers", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		ID        int    `json:"id"`
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Code      string `json:"code"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && resp.StatusCode < http.StatusBadRequest {
		return nil, fmt.Errorf("decode customer: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		switch {
		case body.Code == "registration-error-email-exists",
			body.Code == "customer_invalid_email",
			strings.Contains(body.Message, "email already"):
			return nil, ErrEmailExists
		case body.Code == "registration-error-username-exists",
			strings.Contains(body.Message, "username already"):
			return nil, ErrUsernameExists
		}
		c.logger.Printf("create customer: upstream status %d code=%s", resp.StatusCode, body.Code)
		if body.Message != "" {
			return nil, errors.New(body.Message)
		}
		return nil, fmt.Errorf("create customer: upstream status %d", resp.StatusCode)
	}

	displayName := strings.TrimSpace(body.FirstName + " " + body.LastName)
	if displayName == "" {
		displayName = body.Username
	}
	session := &Session{
		User: User{
			ID:          body.ID,
			Email:       body.Email,
			DisplayName: displayName,
			FirstName:   body.FirstName,
			LastName:    body.LastName,
		},
	}

	if login, err := c.Login(ctx, email, in.Password); err != nil {
		c.logger.Printf("auto-login after registration: %v", err)
	} else {
		session.Token = login.Token
		session.ExpiresAt = login.ExpiresAt
	}

	return session, nil
}

// Refresh exchanges a still-valid token for a fresh one.
func (c *Client) Refresh(ctx context.Context, token string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/jwt-auth/v1/token/refresh", nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("jwt refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", 0, ErrInvalidToken
		}
		return "", 0, fmt.Errorf("jwt refresh: upstream status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", 0, fmt.Errorf("decode jwt refresh: %w", err)
	}
	if body.Token == "" {
		return "", 0, errors.New("jwt refresh response missing token")
	}
	return body.Token, tokenExpiryMillis(body.Token), nil
}

func (c *Client) fetchProfile(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/wp-json/wp/v2/users/me?context=edit", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("profile: upstream status %d", resp.StatusCode)
	}

	var body struct {
		ID        int    `json:"id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return User{}, err
	}
	return User{
		ID:          body.ID,
		Email:       body.Email,
		DisplayName: body.Name,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
	}, nil
}

// tokenExpiryMillis pulls exp out of the JWT payload without verifying the
// signature; the upstream plugin owns token validity. Returns 0 when the
// payload cannot be decoded.
func tokenExpiryMillis(token string) int64 {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return 0
	}
	return claims.Exp * 1000
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
