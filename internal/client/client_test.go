package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/hcdash/internal/api"
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/config"
	"github.com/ougirez/hcdash/internal/pkg/store"
	"github.com/ougirez/hcdash/internal/service/narrative"
	"github.com/ougirez/hcdash/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, delay time.Duration) string {
	t.Helper()

	st := store.NewStore()
	sessions := session.NewSessionService(narrative.NewNarrativeService(st), session.WithDelay(delay))
	svc, err := api.NewAPIService(st, sessions, &config.Config{
		HTTPAddr:             ":0",
		AnalysisDelay:        delay,
		SessionSecret:        "client-test",
		SessionTTL:           time.Hour,
		SessionSweepInterval: time.Minute,
		LogFormat:            "console",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(func() {
		srv.Close()
		sessions.Wait()
	})
	return srv.URL
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("rpt_rec_num,wksht_cd\n1,A000000\n"), 0o600))
		paths = append(paths, p)
	}
	return paths
}

func fastPoll() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(5*time.Millisecond), 200)
}

func TestNarrate(t *testing.T) {
	c, err := New(newServer(t, 20*time.Millisecond), WithPollBackOff(fastPoll))
	require.NoError(t, err)

	d, err := c.Narrate(context.Background(), domain.HospitalMain, writeFiles(t, "hcris_2020.csv", "hcris_2021.csv"))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Emory University Hospital (Main Campus)", d.Title)
	require.NotNil(t, d.Labor.ContractLaborAlert)

	snap, err := c.Session(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Files, 2)
	assert.Equal(t, domain.FlowShowing, snap.State)

	snap, err = c.Back(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FlowCollecting, snap.State)
}

func TestTrigger_MissingInput(t *testing.T) {
	c, err := New(newServer(t, 0))
	require.NoError(t, err)

	_, err = c.Trigger(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Please upload CSV files and select a hospital", apiErr.Message)
}

func TestUploadFiles_MissingLocalFile(t *testing.T) {
	c, err := New(newServer(t, 0))
	require.NoError(t, err)

	_, err = c.UploadFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing.csv")})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWaitShowing_StopsOnCollecting(t *testing.T) {
	c, err := New(newServer(t, 0), WithPollBackOff(fastPoll))
	require.NoError(t, err)

	_, err = c.WaitShowing(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis did not run")
}

func TestWaitShowing_ClientErrorIsFinal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"session not found","code":404}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithPollBackOff(fastPoll))
	require.NoError(t, err)

	_, err = c.WaitShowing(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWaitShowing_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"8c5f8f55-5c36-4f43-9a4a-8e1f3f0f2a10","state":"showing","files":[],"hospital_id":"emory-main","can_analyze":false}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithPollBackOff(fastPoll))
	require.NoError(t, err)

	snap, err := c.WaitShowing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FlowShowing, snap.State)
	assert.Equal(t, int32(3), calls.Load())
}
