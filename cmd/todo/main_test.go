package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_LEVEL", "error")

	application, err := setup()
	require.NoError(t, err, "failed to set up app")
	h := application.Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "Dashboard", method: "GET", path: "/", wantStatus: http.StatusOK},
		{name: "Health check", method: "GET", path: "/healthz", wantStatus: http.StatusOK},
		{name: "Static file access", method: "GET", path: "/static/style.css", wantStatus: http.StatusOK},
		{name: "List tasks", method: "GET", path: "/api/tasks", wantStatus: http.StatusOK},
		{name: "Create task", method: "POST", path: "/tasks", body: `{"title":"Ship it"}`, wantStatus: http.StatusCreated},
		{name: "Toggle task", method: "PUT", path: "/api/tasks/1", wantStatus: http.StatusOK},
		{name: "Delete missing task", method: "DELETE", path: "/tasks/42", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code,
				"%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}
