package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/client/models"
	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClient talks to the VocabDay JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type errorBody struct {
	Error        string        `json:"error"`
	RequiredTest *RequiredTest `json:"requiredTest"`
}

// do sends one request. A non-nil session is checked for expiry first and
// attached as a bearer token.
func (c *HTTPClient) do(ctx context.Context, method, path string, s *models.Session, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil {
		if !s.Valid(c.now()) {
			return ErrSessionExpired
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && s != nil {
		return ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Error, RequiredTest: eb.RequiredTest}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// sessionFrom builds a Session from an auth response. The expiry is read
// from the token's exp claim without verifying the signature; the server
// remains the authority on validity.
func sessionFrom(r *models.AuthResponse) (*models.Session, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(r.Token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, errors.New("token has no expiry")
	}
	return &models.Session{
		UserID:    r.User.ID,
		Email:     r.User.Email,
		Name:      r.User.Name,
		Token:     r.Token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password, name string) (*models.Session, error) {
	var resp models.AuthResponse
	in := map[string]string{"email": email, "password": password, "name": name}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, in, &resp); err != nil {
		return nil, err
	}
	return sessionFrom(&resp)
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var resp models.AuthResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", nil, in, &resp); err != nil {
		return nil, err
	}
	return sessionFrom(&resp)
}

func (c *HTTPClient) Me(ctx context.Context, s *models.Session) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", s, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) Available(ctx context.Context, s *models.Session) (*models.Availability, error) {
	var resp models.Availability
	if err := c.do(ctx, http.MethodGet, "/tests/available", s, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetTest(ctx context.Context, s *models.Session, id int64) (*models.TestView, error) {
	var resp models.TestView
	if err := c.do(ctx, http.MethodGet, "/tests/"+strconv.FormatInt(id, 10), s, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Submit(ctx context.Context, s *models.Session, id int64, answers []string) (*models.SubmitResult, error) {
	var resp models.SubmitResult
	in := map[string][]string{"answers": answers}
	if err := c.do(ctx, http.MethodPost, "/tests/"+strconv.FormatInt(id, 10)+"/submit", s, in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListWords(ctx context.Context, s *models.Session, search string) ([]models.SavedWord, error) {
	path := "/saved-words"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var resp struct {
		Words []models.SavedWord `json:"words"`
	}
	if err := c.do(ctx, http.MethodGet, path, s, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Words, nil
}

func (c *HTTPClient) AddWord(ctx context.Context, s *models.Session, word, meaning string, notes *string) (*models.SavedWord, error) {
	in := map[string]any{"word": word, "meaning": meaning}
	if notes != nil {
		in["notes"] = *notes
	}
	var resp struct {
		Word models.SavedWord `json:"word"`
	}
	if err := c.do(ctx, http.MethodPost, "/saved-words", s, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Word, nil
}

func (c *HTTPClient) UpdateWord(ctx context.Context, s *models.Session, id int64, patch models.WordPatch) (*models.SavedWord, error) {
	var resp struct {
		Word models.SavedWord `json:"word"`
	}
	if err := c.do(ctx, http.MethodPatch, "/saved-words/"+strconv.FormatInt(id, 10), s, patch.Body(), &resp); err != nil {
		return nil, err
	}
	return &resp.Word, nil
}

func (c *HTTPClient) DeleteWord(ctx context.Context, s *models.Session, id int64) error {
	return c.do(ctx, http.MethodDelete, "/saved-words/"+strconv.FormatInt(id, 10), s, nil, nil)
}
