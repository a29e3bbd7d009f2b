// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/health"
	"github.com/vechain/dinostake/log"
)

func TestPostLogLevelHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLevel  slog.Level
	}{
		{"debug", `{"level":"debug"}`, http.StatusOK, log.LevelDebug},
		{"trace", `{"level":"trace"}`, http.StatusOK, log.LevelTrace},
		{"invalid level", `{"level":"invalid_body"}`, http.StatusBadRequest, log.LevelInfo},
		{"invalid body", `level=debug`, http.StatusBadRequest, log.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logLevel slog.LevelVar
			logLevel.Set(log.LevelInfo)

			req := httptest.NewRequest(http.MethodPost, "/admin/loglevel", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			HTTPHandler(&logLevel, nil).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLevel, logLevel.Level())
			if tt.wantStatus == http.StatusOK {
				var response logLevelResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
				assert.Equal(t, tt.name, response.CurrentLevel)
			} else {
				var response errorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
				assert.Equal(t, tt.wantStatus, response.ErrorCode)
			}
		})
	}
}

func TestGetLogLevelHandler(t *testing.T) {
	var logLevel slog.LevelVar

	req := httptest.NewRequest(http.MethodGet, "/admin/loglevel", nil)
	rr := httptest.NewRecorder()
	HTTPHandler(&logLevel, nil).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var response logLevelResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "info", response.CurrentLevel)

	req = httptest.NewRequest(http.MethodPut, "/admin/loglevel", nil)
	rr = httptest.NewRecorder()
	HTTPHandler(&logLevel, nil).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealthHandler(t *testing.T) {
	var logLevel slog.LevelVar
	clock := clockwork.NewFakeClock()
	h := health.New(clock, time.Minute)
	handler := HTTPHandler(&logLevel, h)

	get := func() (*health.Status, int) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/health", nil))
		var status health.Status
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
		return &status, rr.Code
	}

	status, code := get()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, status.Healthy)

	h.BootstrapStatus(true)
	h.NewDistribution(42)
	status, code = get()
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(42), status.Distribution.LedgerTime)
}

func TestStartServer(t *testing.T) {
	var logLevel slog.LevelVar
	url, stop, err := StartServer("localhost:0", &logLevel, nil)
	require.NoError(t, err)
	defer stop()

	resp, err := http.Get(url + "/loglevel")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
