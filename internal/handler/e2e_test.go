package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-ticker/internal/model"
	"github.com/BuzzLyutic/task-ticker/internal/repo"
	"github.com/BuzzLyutic/task-ticker/internal/service"
	"github.com/BuzzLyutic/task-ticker/internal/storage"
	"github.com/BuzzLyutic/task-ticker/internal/testutil"
)

func startServer(t *testing.T, s storage.Storage) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	store := service.NewTaskStore(repo.NewTaskRepo(s, repo.DefaultKey, logger), logger)
	require.NoError(t, store.Hydrate(context.Background()))

	return httptest.NewServer(NewRouter(NewTaskHandler(store, logger)))
}

func createTask(t *testing.T, server *httptest.Server, text string) model.Task {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"text": text})
	resp, err := http.Post(server.URL+"/api/tasks", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&task))
	return task
}

func listTasks(t *testing.T, server *httptest.Server) listResponse {
	t.Helper()

	resp, err := http.Get(server.URL + "/api/tasks")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list listResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

// runWorkflow проходит сценарий "молоко/собака" и перезапуск сервера.
func runWorkflow(t *testing.T, s storage.Storage) {
	server := startServer(t, s)

	milk := createTask(t, server, "Buy milk")
	dog := createTask(t, server, "Walk dog")

	list := listTasks(t, server)
	require.Len(t, list.Tasks, 2)
	assert.Equal(t, dog.ID, list.Tasks[0].ID)
	assert.Equal(t, milk.ID, list.Tasks[1].ID)

	resp, err := http.Post(server.URL+"/api/tasks/"+milk.ID+"/toggle", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 1, listTasks(t, server).Pending)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/tasks/"+dog.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	final := listTasks(t, server)
	assert.Equal(t, []model.Task{{ID: milk.ID, Text: "Buy milk", Completed: true}}, final.Tasks)
	assert.Equal(t, 0, final.Pending)
	server.Close()

	// Новый процесс поверх того же хранилища
	restarted := startServer(t, s)
	defer restarted.Close()
	assert.Equal(t, final, listTasks(t, restarted))
}

func TestE2E_FileStorage(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.NewFileStorage(dir)
	require.NoError(t, err)

	runWorkflow(t, s)
}

func TestE2E_SQLiteStorage(t *testing.T) {
	s, err := storage.NewSQLiteStorage(t.TempDir() + "/tt.db")
	require.NoError(t, err)
	defer s.Close()

	runWorkflow(t, s)
}

func TestE2E_PostgresStorage(t *testing.T) {
	pool, cleanup := testutil.SetupTestDB(t)
	defer cleanup()
	testutil.TruncateKV(t, pool)

	runWorkflow(t, storage.NewPostgresStorage(pool))
}
