package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

const loginPath = "/auth/login"

// Login exchanges a username and password for a user token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, &LoginError{Kind: LoginRequestFailed, Err: err}
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	raw, err := c.fetchText(ctx, http.MethodPost, c.baseURL+loginPath, header, bytes.NewReader(payload))
	if err != nil {
		return nil, loginFailure(err)
	}

	result, err := ParseLoginResult(raw)
	if err != nil {
		return nil, &LoginError{Kind: LoginInvalidResponse, Err: err}
	}
	return result, nil
}

// loginFailure maps a fetch error to the login error taxonomy.
func loginFailure(err error) *LoginError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Kind == KindHTTPStatus {
		switch reqErr.Status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity:
			return &LoginError{Kind: LoginInvalidCredentials, Status: reqErr.Status, Err: err}
		case http.StatusForbidden:
			return &LoginError{Kind: LoginForbidden, Status: reqErr.Status, Err: err}
		default:
			return &LoginError{Kind: LoginRequestFailed, Status: reqErr.Status, Err: err}
		}
	}
	return &LoginError{Kind: LoginRequestFailed, Err: err}
}
