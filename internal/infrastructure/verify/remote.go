package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ecobot-api/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Remote delegates code issuance and validation to an external verification
// service (Twilio-Verify-shaped REST API). The remote service keeps custody
// of the code; only a status ever crosses the wire back.
type Remote struct {
	accountID  string
	authSecret string
	serviceID  string
	baseURL    string
	httpClient *http.Client
}

// NewRemote returns a networked provider for the given service credentials.
// baseURL may be empty, defaulting to the Twilio Verify v2 endpoint.
func NewRemote(accountID, authSecret, serviceID, baseURL string) *Remote {
	if baseURL == "" {
		baseURL = "https://verify.twilio.com/v2"
	}
	return &Remote{
		accountID:  accountID,
		authSecret: authSecret,
		serviceID:  serviceID,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type verificationResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	Valid  bool   `json:"valid"`
}

func (r *Remote) Start(ctx context.Context, phone string) (string, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", "sms")

	resp, err := r.post(ctx, "/Verifications", form)
	if err != nil {
		return "", err
	}
	return resp.SID, nil
}

func (r *Remote) Check(ctx context.Context, phone, code string) (CheckResult, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	resp, err := r.post(ctx, "/VerificationCheck", form)
	if err != nil {
		return Rejected, err
	}
	switch resp.Status {
	case "approved":
		return Approved, nil
	case "expired", "canceled":
		return Expired, nil
	default: // "pending" means the code did not match
		return Rejected, nil
	}
}

func (r *Remote) post(ctx context.Context, path string, form url.Values) (*verificationResponse, error) {
	endpoint := fmt.Sprintf("%s/Services/%s%s", r.baseURL, r.serviceID, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(r.accountID, r.authSecret)

	httpResp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %v: %w", path, err, domain.ErrProviderUnreachable)
	}
	defer httpResp.Body.Close()

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("verify %s: status %d: %w", path, httpResp.StatusCode, domain.ErrProviderUnauthorized)
	case httpResp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 1024))
		return nil, fmt.Errorf("verify %s: status %d body %s: %w", path, httpResp.StatusCode, body, domain.ErrProviderUnreachable)
	}

	var resp verificationResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("verify %s: decode response: %v: %w", path, err, domain.ErrProviderUnreachable)
	}
	return &resp, nil
}
