package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks to the blog backend over its REST/JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a gateway rooted at baseURL (scheme and host, e.g.
// "http://localhost:8000"). tokens supplies the bearer credential for
// authenticated operations.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	if tokens == nil {
		tokens = TokenFunc(func() string { return "" })
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// auth selects how a request is credentialed.
type auth int

const (
	authNone auth = iota
	authSession
	authExplicit
)

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	auth        auth
	token       string
}

func jsonRequest(method, path string, v any, a auth) (request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return request{}, fmt.Errorf("encode %s body: %w", path, err)
	}
	return request{method: method, path: path, body: bytes.NewReader(b), contentType: "application/json", auth: a}, nil
}

// do performs r and decodes a 2xx JSON body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	token := r.token
	switch r.auth {
	case authSession:
		token = c.tokens.Token()
		if token == "" {
			return ErrNoSession
		}
	case authExplicit:
		if token == "" {
			return ErrNoSession
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, reqID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.AuthorizationValue(token))
	}

	log := c.log.With("method", r.method, "path", r.path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := decodeError(resp)
		log.Warn(ctx, "request rejected", "status", resp.StatusCode, "error", err)
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.path, err)
	}
	return nil
}

// mapTransportError classifies failures where no response arrived: refused
// connections, timeouts and cancelled contexts all end up as ErrUnavailable,
// with the cause still reachable through errors.Is.
func mapTransportError(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

type registerResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *HTTPClient) Register(ctx context.Context, in models.RegisterInput) (*models.Session, error) {
	r, err := jsonRequest(http.MethodPost, "/api/register/", in, authNone)
	if err != nil {
		return nil, err
	}
	var resp registerResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("register: %w", errEmptyToken)
	}
	return &models.Session{Token: resp.Token, User: resp.User}, nil
}

var errEmptyToken = errors.New("server returned no token")

type loginResponse struct {
	Token    string    `json:"token"`
	UserID   models.ID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (c *HTTPClient) Login(ctx context.Context, in models.LoginInput) (*models.Session, error) {
	r, err := jsonRequest(http.MethodPost, "/api/login/", in, authNone)
	if err != nil {
		return nil, err
	}
	var resp loginResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login: %w", errEmptyToken)
	}
	return &models.Session{
		Token: resp.Token,
		User:  models.User{ID: resp.UserID, Username: resp.Username, Email: resp.Email},
	}, nil
}

func (c *HTTPClient) FetchCurrentUser(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	r := request{method: http.MethodGet, path: "/api/user/", auth: authExplicit, token: token}
	if err := c.do(ctx, r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error) {
	r, err := jsonRequest(http.MethodPatch, "/api/user/", in, authSession)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := c.do(ctx, r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/posts/"}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) ListMyPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/my-posts/", auth: authSession}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func postPath(id models.ID) string {
	return "/api/posts/" + url.PathEscape(id.String()) + "/"
}

func (c *HTTPClient) GetPost(ctx context.Context, id models.ID) (*models.Post, error) {
	var p models.Post
	if err := c.do(ctx, request{method: http.MethodGet, path: postPath(id)}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	return c.sendPost(ctx, http.MethodPost, "/api/posts/", in)
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id models.ID, in models.PostInput) (*models.Post, error) {
	return c.sendPost(ctx, http.MethodPatch, postPath(id), in)
}

func (c *HTTPClient) DeletePost(ctx context.Context, id models.ID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: postPath(id), auth: authSession}, nil)
}

func (c *HTTPClient) sendPost(ctx context.Context, method, path string, in models.PostInput) (*models.Post, error) {
	body, contentType, err := encodePostForm(in)
	if err != nil {
		return nil, err
	}
	r := request{method: method, path: path, body: body, contentType: contentType, auth: authSession}

	var p models.Post
	if err := c.do(ctx, r, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodePostForm writes in as multipart/form-data. Empty scalars and a nil
// image are left out so a partial update only touches what was given.
func encodePostForm(in models.PostInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if in.Title != "" {
		if err := w.WriteField(models.FieldTitle, in.Title); err != nil {
			return nil, "", fmt.Errorf("write title: %w", err)
		}
	}
	if in.Description != "" {
		if err := w.WriteField(models.FieldDescription, in.Description); err != nil {
			return nil, "", fmt.Errorf("write description: %w", err)
		}
	}
	if in.Image != nil {
		name := in.Image.Filename
		if name == "" {
			name = "image"
		}
		ct := in.Image.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, models.FieldImage, quoteEscaper.Replace(name)))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(in.Image.Data); err != nil {
			return nil, "", fmt.Errorf("write image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
