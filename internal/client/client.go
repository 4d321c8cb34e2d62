package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/ougirez/hcdash/internal/pkg/logger"
)

// APIError is a non-2xx answer from the dashboard service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hcdash: %d %s", e.Status, e.Message)
}

// Client drives one browser-like session against a running dashboard
// service. The session cookie lives in the client's jar.
type Client struct {
	baseURL string
	http    *http.Client

	newBackOff func() backoff.BackOff
}

type Option func(*Client)

// WithPollBackOff replaces the policy used while waiting for results.
func WithPollBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = f }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookiejar.New: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			b.MaxElapsedTime = time.Minute
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) (status int, err error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http.Do: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close body: %w", closeErr)
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		var e domain.ErrorResponse
		if decodeErr := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&e); decodeErr != nil || e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) Session(ctx context.Context) (*domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/session", nil, "", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// UploadFiles sends local files as if picked in the browser's file dialog.
// The declared type is text/csv for .csv names.
func (c *Client) UploadFiles(ctx context.Context, paths []string) (*domain.SessionSnapshot, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, path := range paths {
		if err := writeFilePart(w, path); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("multipart.Writer.Close: %w", err)
	}

	var snap domain.SessionSnapshot
	path := "/api/v1/session/files?source=" + string(domain.UploadSourceBrowse)
	if _, err := c.do(ctx, http.MethodPost, path, body, w.FormDataContentType(), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func writeFilePart(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	contentType := echo.MIMEOctetStream
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		contentType = constants.MIMETypeCSV
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, filepath.Base(path)))
	h.Set(echo.HeaderContentType, contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("multipart.Writer.CreatePart: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("io.Copy: %w", err)
	}
	return nil
}

func (c *Client) SelectHospital(ctx context.Context, id domain.HospitalID) (*domain.SessionSnapshot, error) {
	payload, err := sonic.ConfigStd.Marshal(domain.SelectHospitalRequest{HospitalID: id.String()})
	if err != nil {
		return nil, fmt.Errorf("sonic.Marshal: %w", err)
	}

	var snap domain.SessionSnapshot
	if _, err := c.do(ctx, http.MethodPut, "/api/v1/session/hospital", bytes.NewReader(payload), echo.MIMEApplicationJSON, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Trigger starts the analysis without waiting for it.
func (c *Client) Trigger(ctx context.Context) (*domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/session/narrative?wait=false", nil, "", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// WaitShowing polls the session until results are on screen. A session that
// falls back to collecting ends the wait with the notice it carries.
func (c *Client) WaitShowing(ctx context.Context) (*domain.SessionSnapshot, error) {
	var snap *domain.SessionSnapshot
	err := backoff.Retry(
		func() error {
			s, err := c.Session(ctx)
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			if err != nil {
				return err
			}

			switch s.State {
			case domain.FlowShowing:
				snap = s
				return nil
			case domain.FlowCollecting:
				return backoff.Permanent(fmt.Errorf("analysis did not run: %s", s.Notice))
			}

			logger.Debugf(ctx, "session %s still %s", s.ID, s.State)
			return fmt.Errorf("session %s is %s", s.ID, s.State)
		},
		backoff.WithContext(c.newBackOff(), ctx),
	)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Client) Back(ctx context.Context) (*domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/session/back", nil, "", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Narrate runs the whole flow: upload, select, trigger and wait.
func (c *Client) Narrate(ctx context.Context, hospital domain.HospitalID, paths []string) (*domain.Dashboard, error) {
	snap, err := c.UploadFiles(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("UploadFiles: %w", err)
	}
	logger.Infof(ctx, "uploaded %d files", len(snap.Files))

	if _, err := c.SelectHospital(ctx, hospital); err != nil {
		return nil, fmt.Errorf("SelectHospital: %w", err)
	}

	if _, err := c.Trigger(ctx); err != nil {
		return nil, fmt.Errorf("Trigger: %w", err)
	}

	snap, err = c.WaitShowing(ctx)
	if err != nil {
		return nil, fmt.Errorf("WaitShowing: %w", err)
	}

	return snap.Dashboard, nil
}
