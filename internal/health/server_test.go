package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(Config{ServiceName: "tradescore", Version: "1.2.3", Commit: "abc123"})

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "tradescore", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestReadyEndpointNotReady(t *testing.T) {
	srv := NewServer(Config{ServiceName: "tradescore"})

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadyEndpointDatabaseFailure(t *testing.T) {
	srv := NewServer(Config{ServiceName: "tradescore", DB: stubPinger{err: errors.New("connection refused")}})
	srv.SetReady(true)

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Checks["database"], "connection refused")
}

func TestReadyEndpointReportsLastRun(t *testing.T) {
	srv := NewServer(Config{ServiceName: "tradescore", DB: stubPinger{}})
	srv.SetReady(true)
	at := time.Date(2024, 5, 17, 6, 0, 0, 0, time.UTC)
	srv.RecordRun("0f2a7e9c", at)

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0f2a7e9c", resp.LastRunID)
	assert.Equal(t, "2024-05-17T06:00:00Z", resp.LastRunAt)
	assert.Equal(t, "ok", resp.Checks["database"])
}
