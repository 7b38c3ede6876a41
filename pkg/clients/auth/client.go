package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/petcare/internal/config"
)

// Client verifies session tokens against the external auth service and
// resolves them to a caller identity.
type Client interface {
	VerifySession(ctx context.Context, token string) (string, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an auth API client using the provided configuration values.
func NewClient(cfg config.AuthConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// verifyResponse mirrors the successful response from the auth service.
type verifyResponse struct {
	UserID string `json:"user_id"`
}

// apiError represents an auth service error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// VerifySession resolves a bearer token to the owning user id.
func (c *APIClient) VerifySession(ctx context.Context, token string) (string, error) {
	result := new(verifyResponse)
	authErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", token)).
		SetResult(result).
		SetError(authErr).
		Get("/v1/sessions/me")
	if err != nil {
		return "", fmt.Errorf("verify session: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := authErr.Error.Message
		code := resp.StatusCode()
		if authErr.Error.Code != 0 {
			code = authErr.Error.Code
		}
		return "", fmt.Errorf("auth service error: code=%d, message=%s", code, message)
	}

	if result.UserID == "" {
		return "", fmt.Errorf("auth service returned an empty user id")
	}

	return result.UserID, nil
}
