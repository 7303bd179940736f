// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-client/internal/config"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/utils"
	"github.com/MKhiriev/go-task-client/models"
)

// RefreshPath is the token refresh endpoint relative to the base URL.
const RefreshPath = "/auth/refresh"

// Call describes one backend request.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	// Body is sent as JSON when non-nil.
	Body any
	// Result receives the decoded JSON body of a 2xx response when non-nil.
	Result any
	Header http.Header
	// Timeout overrides the client timeout for this call when positive.
	Timeout time.Duration
	// NoAuth calls never carry a bearer token and never trigger a refresh.
	NoAuth bool
}

// RequestOption customises a [Call].
type RequestOption func(*Call)

// WithQuery sets the query string parameters.
func WithQuery(q url.Values) RequestOption {
	return func(c *Call) { c.Query = q }
}

// WithBody sets the JSON request body.
func WithBody(body any) RequestOption {
	return func(c *Call) { c.Body = body }
}

// WithResult sets the target the 2xx response body is decoded into.
func WithResult(result any) RequestOption {
	return func(c *Call) { c.Result = result }
}

// WithHeader adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(c *Call) {
		if c.Header == nil {
			c.Header = http.Header{}
		}
		c.Header.Add(key, value)
	}
}

// WithTimeout overrides the client timeout for one call.
func WithTimeout(d time.Duration) RequestOption {
	return func(c *Call) { c.Timeout = d }
}

// refreshOutcome is what a queued request is released with. An empty token
// means the refresh failed.
type refreshOutcome struct {
	token string
}

// AuthClient is the authenticated HTTP client of the backend.
//
// At most one refresh call is in flight per client. Requests that get a 401
// while it runs wait for its outcome and are replayed with the renewed
// token, or fail with their own original error when the refresh fails.
type AuthClient struct {
	client   *utils.HTTPClient
	store    TokenStore
	observer SessionObserver
	logger   *logger.Logger

	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshOutcome
}

// NewAuthClient builds an [AuthClient] for the base URL and timeout of
// adapterCfg. observer may be nil.
func NewAuthClient(adapterCfg config.ClientAdapter, store TokenStore, observer SessionObserver, logger *logger.Logger) (*AuthClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if store == nil {
		return nil, errors.New("token store is required")
	}
	if observer == nil {
		observer = nopObserver{}
	}

	return &AuthClient{
		client:   utils.NewJSONClient(baseURL, adapterCfg.RequestTimeout, utils.NewUUIDGenerator()),
		store:    store,
		observer: observer,
		logger:   logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (a *AuthClient) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodGet, path, false, opts))
}

func (a *AuthClient) Post(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodPost, path, false, opts))
}

func (a *AuthClient) Put(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodPut, path, false, opts))
}

func (a *AuthClient) Patch(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodPatch, path, false, opts))
}

func (a *AuthClient) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodDelete, path, false, opts))
}

func (a *AuthClient) GetNoAuth(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodGet, path, true, opts))
}

func (a *AuthClient) PostNoAuth(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodPost, path, true, opts))
}

func (a *AuthClient) PutNoAuth(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodPut, path, true, opts))
}

func (a *AuthClient) PatchNoAuth(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodPatch, path, true, opts))
}

func (a *AuthClient) DeleteNoAuth(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return a.Do(ctx, newCall(http.MethodDelete, path, true, opts))
}

func newCall(method, path string, noAuth bool, opts []RequestOption) Call {
	c := Call{Method: method, Path: path, NoAuth: noAuth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Do executes call. Authenticated calls that get a 401 are retried once
// after the session has been renewed.
func (a *AuthClient) Do(ctx context.Context, call Call) (*Response, error) {
	if call.NoAuth {
		return a.send(ctx, call, "")
	}

	token, err := a.store.AccessToken(ctx)
	if err != nil {
		return nil, &Failure{Kind: FailureStorage, Err: fmt.Errorf("read access token: %w", err)}
	}

	resp, err := a.send(ctx, call, token)
	if err == nil || !errors.Is(err, ErrUnauthorized) {
		return resp, err
	}

	renewed, renewErr := a.renew(ctx, token)
	if renewErr != nil {
		return nil, renewErr
	}
	if renewed == "" {
		return nil, err
	}

	// the replay is the only retry: a second 401 is returned as is
	return a.send(ctx, call, renewed)
}

// renew returns the token to replay a request that got a 401 with sentWith.
// It returns "" with a nil error when the original error must be returned
// unchanged: there is no refresh token, or another request's refresh failed.
func (a *AuthClient) renew(ctx context.Context, sentWith string) (string, error) {
	a.mu.Lock()

	if a.refreshing {
		ch := make(chan refreshOutcome, 1)
		a.waiters = append(a.waiters, ch)
		a.mu.Unlock()

		select {
		case out := <-ch:
			return out.token, nil
		case <-ctx.Done():
			return "", &Failure{Kind: FailureTransport, Err: ctx.Err()}
		}
	}

	// with no refresh in flight the store holds the outcome of the last one
	current, err := a.store.AccessToken(ctx)
	if err != nil {
		a.mu.Unlock()
		return "", &Failure{Kind: FailureStorage, Err: fmt.Errorf("read access token: %w", err)}
	}
	if current != "" && current != sentWith {
		a.mu.Unlock()
		return current, nil
	}

	refreshToken, err := a.store.RefreshToken(ctx)
	if err != nil {
		a.mu.Unlock()
		return "", &Failure{Kind: FailureStorage, Err: fmt.Errorf("read refresh token: %w", err)}
	}
	if refreshToken == "" {
		a.mu.Unlock()
		return "", nil
	}

	a.refreshing = true
	a.mu.Unlock()

	session, err := a.refresh(context.WithoutCancel(ctx), refreshToken)
	if err != nil {
		a.logger.Warn().Err(err).Msg("session refresh failed, purging local session")
		if clearErr := a.store.ClearSession(context.WithoutCancel(ctx)); clearErr != nil {
			a.logger.Err(clearErr).Msg("error clearing session")
		}
		a.release("")
		a.observer.SessionExpired(err)
		return "", &Failure{Kind: FailureSessionExpired, Err: fmt.Errorf("%w: %w", ErrSessionExpired, err)}
	}

	a.logger.Info().Msg("session refreshed")
	a.release(session.AccessToken)
	a.observer.SessionRefreshed(session)
	return session.AccessToken, nil
}

// release hands token to every queued request and clears the in-progress
// flag in the same critical section.
func (a *AuthClient) release(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, ch := range a.waiters {
		ch <- refreshOutcome{token: token}
	}
	a.waiters = nil
	a.refreshing = false
}

// refresh calls the refresh endpoint and stores the renewed session.
func (a *AuthClient) refresh(ctx context.Context, refreshToken string) (models.Session, error) {
	a.logger.Info().Msg("access token rejected, refreshing session")

	var auth models.AuthResponse
	_, err := a.send(ctx, Call{
		Method: http.MethodPost,
		Path:   RefreshPath,
		Body:   models.RefreshRequest{RefreshToken: refreshToken},
		Result: &auth,
		NoAuth: true,
	}, "")
	if err != nil {
		return models.Session{}, fmt.Errorf("refresh request: %w", err)
	}
	if auth.AccessToken == "" {
		return models.Session{}, ErrIncompleteRefresh
	}

	session := models.Session{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		User:         auth.CurrentUser,
	}
	if session.RefreshToken == "" {
		session.RefreshToken = refreshToken
	}
	if session.User == nil {
		// the refresh response may omit the profile; keep the stored one
		if stored, err := a.store.LoadSession(ctx); err == nil {
			session.User = stored.User
		}
	}

	if err = a.store.SaveSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("store refreshed session: %w", err)
	}

	return session, nil
}

// send performs one HTTP exchange. A non-empty token is sent as bearer.
func (a *AuthClient) send(ctx context.Context, call Call, token string) (*Response, error) {
	if call.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, call.Timeout)
		defer cancel()
	}

	req := a.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	if call.Query != nil {
		req.SetQueryParamsFromValues(call.Query)
	}
	if call.Body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(call.Body)
	}
	for key, values := range call.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := req.Execute(call.Method, call.Path)
	if err != nil {
		a.logger.Debug().Err(err).
			Str("method", call.Method).
			Str("path", call.Path).
			Dur("duration", time.Since(start)).
			Msg("request failed")
		return nil, &Failure{Kind: FailureTransport, Err: fmt.Errorf("%s %s: %w", call.Method, call.Path, err)}
	}

	a.logger.Debug().
		Str("method", call.Method).
		Str("path", call.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Str("request_id", req.Header.Get(utils.RequestIDHeader)).
		Msg("request done")

	if failure := mapHTTPError(resp); failure != nil {
		return nil, failure
	}

	out := &Response{Status: resp.StatusCode(), Header: resp.Header(), Body: resp.Body()}
	if call.Result != nil && len(out.Body) > 0 {
		if err = json.Unmarshal(out.Body, call.Result); err != nil {
			return nil, &Failure{Kind: FailureTransport, Err: fmt.Errorf("decode %s %s response: %w", call.Method, call.Path, err)}
		}
	}

	return out, nil
}

type nopObserver struct{}

func (nopObserver) SessionRefreshed(models.Session) {}
func (nopObserver) SessionExpired(error)            {}
