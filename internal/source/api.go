package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/domain"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// Backend paths.
const (
	tasksPath     = "/api/tasks"
	userTasksPath = "/api/tasks/user/{email}"
)

// APIConfig configures the backend client. Token is passed explicitly;
// the client never reads ambient session state.
type APIConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	RetryCount int

	// RetryWait is the initial backoff between retries.
	RetryWait time.Duration
}

// APIClient fetches approved tasks from the dashboard backend.
type APIClient struct {
	client *resty.Client
}

// NewAPIClient creates a backend client.
func NewAPIClient(cfg APIConfig) (*APIClient, error) {
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultAPITimeout
	}
	wait := cfg.RetryWait
	if wait <= 0 {
		wait = 100 * time.Millisecond
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(max(cfg.RetryCount, 0)).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(2 * time.Second)
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	client.AddRetryCondition(retryCondition)

	return &APIClient{client: client}, nil
}

// validateBaseURL requires an absolute http(s) URL.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return tcerrors.Wrapf(tcerrors.ErrConfigInvalidAPI, "base URL %q: %s", raw, err.Error())
	}
	if !u.IsAbs() || u.Host == "" {
		return tcerrors.Wrapf(tcerrors.ErrConfigInvalidAPI, "base URL %q must be absolute", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return tcerrors.Wrapf(tcerrors.ErrConfigInvalidAPI, "base URL scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}

// retryCondition retries network errors, server errors and throttling.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// Approved fetches every approved task.
func (c *APIClient) Approved(ctx context.Context) ([]domain.TaskRecord, error) {
	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("status", constants.TaskStatusApproved.String())
	return c.fetch(ctx, req, tasksPath)
}

// ApprovedForUser fetches the approved tasks assigned to email.
func (c *APIClient) ApprovedForUser(ctx context.Context, email string) ([]domain.TaskRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, tcerrors.Wrap(tcerrors.ErrInvalidArgument, "user email is empty")
	}
	req := c.client.R().
		SetContext(ctx).
		SetPathParam("email", email).
		SetQueryParam("status", constants.TaskStatusApproved.String())
	return c.fetch(ctx, req, userTasksPath)
}

// ApprovedForUsers fetches several users concurrently. Results are merged
// in the order of emails so downstream scheduling stays deterministic.
// The first failure cancels the remaining requests.
func (c *APIClient) ApprovedForUsers(ctx context.Context, emails []string) ([]domain.TaskRecord, error) {
	results := make([][]domain.TaskRecord, len(emails))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MaxConcurrentFetches)
	for i, email := range emails {
		g.Go(func() error {
			records, err := c.ApprovedForUser(gctx, email)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.TaskRecord
	for _, records := range results {
		merged = append(merged, records...)
	}
	return merged, nil
}

func (c *APIClient) fetch(ctx context.Context, req *resty.Request, path string) ([]domain.TaskRecord, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	resp, err := req.Get(path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, tcerrors.Wrapf(tcerrors.ErrFetchFailed, "GET %s: %s", path, err.Error())
	}

	logger.Debug().
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration_ms", time.Since(start)).
		Msg("task backend request completed")

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized:
		return nil, tcerrors.Wrapf(tcerrors.ErrUnauthorized, "GET %s", resp.Request.URL)
	case code >= http.StatusBadRequest:
		return nil, tcerrors.Wrapf(tcerrors.ErrFetchFailed, "GET %s: status %d: %s", resp.Request.URL, code, apiErrorMessage(resp.Body()))
	}

	records, err := decodeJSON(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", tcerrors.ErrFetchFailed, resp.Request.URL, err)
	}
	return records, nil
}

// apiErrorMessage extracts the backend's {"message": ...} or returns the trimmed body.
func apiErrorMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}
	msg := string(bytes.TrimSpace(body))
	const maxLen = 200
	if len(msg) > maxLen {
		msg = msg[:maxLen] + "..."
	}
	return msg
}

// APISource adapts an APIClient to Source. With no users it fetches every
// approved task; otherwise only those assigned to the listed users.
type APISource struct {
	Client *APIClient
	Users  []string
}

// Load fetches the configured task set.
func (s *APISource) Load(ctx context.Context) ([]domain.TaskRecord, error) {
	if len(s.Users) == 0 {
		return s.Client.Approved(ctx)
	}
	return s.Client.ApprovedForUsers(ctx, s.Users)
}
