package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bowerbird-suite/bowerbird/internal/orchestrator"
	"github.com/bowerbird-suite/bowerbird/internal/project"
	"github.com/bowerbird-suite/bowerbird/internal/task"
)

func newTestServer(t *testing.T) (*Server, *project.Store, *task.Store) {
	t.Helper()
	store, err := project.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	tasks := task.NewStore()
	orch := orchestrator.New(orchestrator.Options{Store: store, Tasks: tasks})
	srv := New(Options{
		Orchestrator: orch,
		Store:        store,
		Tasks:        tasks,
		CleanupKeep:  10,
	})
	return srv, store, tasks
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bowerbird")

	w = doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestGenerateFlow(t *testing.T) {
	srv, _, tasks := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/generate",
		map[string]string{"prompt": "Create a recipe sharing app"})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		TaskID string `json:"task_id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.TaskID)
	assert.Equal(t, "pending", resp.Status)

	// Poll until the background run finishes.
	deadline := time.Now().Add(5 * time.Second)
	var final task.Task
	for time.Now().Before(deadline) {
		got, err := tasks.Get(resp.TaskID)
		require.NoError(t, err)
		if got.Status == task.StatusCompleted || got.Status == task.StatusFailed {
			final = got
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, task.StatusCompleted, final.Status)
	assert.Equal(t, "recipe_sharing", final.ProjectName)

	w = doJSON(t, srv, http.MethodGet, "/status/"+resp.TaskID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "completed")
}

func TestGenerateRequiresPrompt(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/generate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/status/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectEndpoints(t *testing.T) {
	srv, store, _ := newTestServer(t)

	_, _, err := store.Write(context.Background(), "demo",
		[]project.File{{Path: "README.md", Content: "# Demo"}}, false)
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "demo")

	w = doJSON(t, srv, http.MethodGet, "/projects/demo", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "file_count")

	w = doJSON(t, srv, http.MethodGet, "/projects/demo/download", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "demo.zip")

	w = doJSON(t, srv, http.MethodDelete, "/projects/demo", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/projects/demo", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCleanupEndpoint(t *testing.T) {
	srv, store, _ := newTestServer(t)

	_, _, err := store.Write(context.Background(), "only",
		[]project.File{{Path: "a.txt", Content: "x"}}, false)
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodPost, "/cleanup", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":[]`)
}
