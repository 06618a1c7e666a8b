package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// ContactRejectedError carries the Contact Form 7 validation message for a
// submission the upstream refused ("validation_failed", "spam", ...).
type ContactRejectedError struct {
	Message string
}

func (e *ContactRejectedError) Error() string {
	if e.Message == "" {
		return "contact form submission rejected"
	}
	return e.Message
}

// Subscribe signs an email up for the newsletter by creating a WooCommerce
// customer. Returns true when the address was already subscribed, which the
// caller treats as success.
func (c *Client) Subscribe(ctx context.Context, email string) (bool, error) {
	// Usernames must be unique upstream; derive one from the email with a
	// numeric suffix like the storefront always has.
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"username": fmt.Sprintf("%s%d", usernameFromEmail(email), rand.IntN(1000)),
		"role":     "customer",
	})
	if err != nil {
		return false, err
	}

	req, err := c.newWCRequest(ctx, http.MethodPost, "/wp-json/wc/v3/customers", bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("subscribe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusBadRequest {
		return false, nil
	}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Code == "registration-error-email-exists" {
		return true, nil
	}
	if body.Message != "" {
		return false, errors.New(body.Message)
	}
	return false, fmt.Errorf("subscribe: upstream status %d", resp.StatusCode)
}

// ContactInput is a contact form submission. Email is the only required
// field; the handler validates it before calling.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// SendContact forwards a submission to the Contact Form 7 REST endpoint as
// multipart/form-data, including the CF7 internal fields the API expects.
func (c *Client) SendContact(ctx context.Context, in ContactInput) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"_wpcf7":          c.cf7FormID,
		"_wpcf7_version":  "6.0",
		"_wpcf7_unit_tag": fmt.Sprintf("wpcf7-f%s-o1", c.cf7FormID),
		"_wpcf7_locale":   "en_US",
		"your-name":       in.Name,
		"your-email":      in.Email,
		"your-phone":      in.Phone,
		"your-message":    in.Message,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/wp-json/contact-form-7/v1/contact-forms/%s/feedback", c.baseURL, c.cf7FormID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contact form: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode contact form response: %w", err)
	}
	if body.Status == "mail_sent" {
		return nil
	}
	c.logger.Printf("contact form rejected: status=%s", body.Status)
	return &ContactRejectedError{Message: body.Message}
}

// ForgotPassword triggers a WordPress password-reset email. It never
// reports whether the account exists: lookup and reset failures are logged
// and swallowed so callers always answer the same way.
func (c *Client) ForgotPassword(ctx context.Context, email string) {
	email = strings.ToLower(strings.TrimSpace(email))

	req, err := c.newWCRequest(ctx, http.MethodGet, "/wp-json/wc/v3/customers?email="+url.QueryEscape(email), nil)
	if err != nil {
		c.logger.Printf("forgot password: %v", err)
		return
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("forgot password lookup: %v", err)
		return
	}
	defer resp.Body.Close()

	var customers []json.RawMessage
	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("forgot password lookup: upstream status %d", resp.StatusCode)
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(&customers); err != nil || len(customers) == 0 {
		return
	}

	form := url.Values{}
	form.Set("user_login", email)
	form.Set("redirect_to", "")
	form.Set("wp-submit", "Get New Password")

	resetReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-login.php?action=lostpassword", strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Printf("forgot password: %v", err)
		return
	}
	resetReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// WordPress answers the lost-password form with a redirect on success.
	noRedirect := *c.httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resetResp, err := noRedirect.Do(resetReq)
	if err != nil {
		c.logger.Printf("forgot password reset: %v", err)
		return
	}
	defer resetResp.Body.Close()

	if resetResp.StatusCode != http.StatusFound && resetResp.StatusCode != http.StatusOK {
		c.logger.Printf("forgot password reset: upstream status %d", resetResp.StatusCode)
	}
}

// CheckoutItem is a line forwarded to WooCommerce checkout.
type CheckoutItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CheckoutURL builds the WooCommerce redirect for the given lines. A single
// item goes straight to checkout; multiple items land on the upstream cart
// page, since WooCommerce only accepts one add-to-cart per URL.
func (c *Client) CheckoutURL(items []CheckoutItem) (string, error) {
	if len(items) == 0 {
		return "", errors.New("cart is empty")
	}
	first := items[0]
	qty := first.Quantity
	if qty < 1 {
		qty = 1
	}
	if len(items) == 1 {
		return fmt.Sprintf("%s/checkout/?add-to-cart=%s&quantity=%d", c.baseURL, first.ID, qty), nil
	}
	return fmt.Sprintf("%s/cart/?add-to-cart=%s&quantity=%d", c.baseURL, first.ID, qty), nil
}
