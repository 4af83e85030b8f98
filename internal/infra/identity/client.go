// Package identity is the HTTP client for the external identity
// service, which owns user accounts and token issuance.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"webstore-service/internal/pkg/authctx"
	"webstore-service/internal/pkg/config"
	"webstore-service/internal/pkg/errs"
	"webstore-service/internal/usecase"

	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.AuthServiceConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) UserByUsername(ctx context.Context, username string) (*usecase.IdentityUser, error) {
	path := "/users/username/" + url.PathEscape(username)
	return c.getUser(ctx, path)
}

func (c *Client) UserByID(ctx context.Context, id uuid.UUID) (*usecase.IdentityUser, error) {
	path := "/users/uuid/" + id.String()
	return c.getUser(ctx, path)
}

func (c *Client) getUser(ctx context.Context, path string) (*usecase.IdentityUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build identity request")
	}
	// Propagate the caller's own credentials, never a service account.
	if token, ok := authctx.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrIdentityUnavailable)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var u usecase.IdentityUser
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, errs.Wrap(err, "failed to decode identity user")
		}
		return &u, nil
	case http.StatusNotFound:
		return nil, usecase.ErrIdentityUserNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, usecase.ErrNotAuthenticated
	default:
		return nil, unexpectedStatus(resp)
	}
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, username, password string) (*usecase.AuthPayload, error) {
	payload, err := c.postCredentials(ctx, "/auth/register", username, password, map[int]error{
		http.StatusConflict: usecase.ErrUsernameTaken,
	})
	return payload, err
}

func (c *Client) Login(ctx context.Context, username, password string) (*usecase.AuthPayload, error) {
	payload, err := c.postCredentials(ctx, "/auth/login", username, password, map[int]error{
		http.StatusUnauthorized: usecase.ErrInvalidCredentials,
		http.StatusNotFound:     usecase.ErrInvalidCredentials,
	})
	return payload, err
}

func (c *Client) postCredentials(ctx context.Context, path, username, password string, statusErrs map[int]error) (*usecase.AuthPayload, error) {
	body, err := json.Marshal(credentialsBody{Username: username, Password: password})
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build identity request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrIdentityUnavailable)
	}
	defer resp.Body.Close()

	if sentinel, ok := statusErrs[resp.StatusCode]; ok {
		return nil, sentinel
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, unexpectedStatus(resp)
	}

	var payload usecase.AuthPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errs.Wrap(err, "failed to decode auth response")
	}
	return &payload, nil
}

func unexpectedStatus(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err := errs.New(fmt.Sprintf("identity service returned %d: %s", resp.StatusCode, string(snippet)))
	return errs.Mark(err, usecase.ErrIdentityUnavailable)
}
