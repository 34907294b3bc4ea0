package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []events.Event
}

func (n *recordingNotifier) Broadcast(e events.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func setupRouter(t *testing.T) (*gin.Engine, *testutil.MemoryStore, *recordingNotifier) {
	t.Helper()
	store := testutil.NewMemoryStore()
	notifier := &recordingNotifier{}
	router := NewRouter(store,
		WithNotifier(notifier),
		WithHealth(func() any { return gin.H{"connected_clients": 2} }),
	)
	return router, store, notifier
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ClientIDHeader, "client-a")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func seed(store *testutil.MemoryStore, status models.Status, titles ...string) []models.Task {
	tasks := make([]models.Task, len(titles))
	for i, title := range titles {
		tasks[i] = models.Task{Title: title, Status: status, Priority: models.PriorityLow, Deadline: "2025-01-01", OrderInColumn: i}
	}
	return store.Seed(tasks...)
}

func TestListItems(t *testing.T) {
	router, store, _ := setupRouter(t)
	seed(store, models.StatusToDo, "a", "b")
	seed(store, models.StatusDone, "c")

	rec := do(t, router, http.MethodGet, "/items?status=TO_DO", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Title)
	assert.Equal(t, 1, tasks[1].OrderInColumn)

	rec = do(t, router, http.MethodGet, "/items?status=in-progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListItems_InvalidStatus(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := do(t, router, http.MethodGet, "/items?status=LATER", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidRequest, decodeError(t, rec).Code)
}

func TestCountItems(t *testing.T) {
	router, store, _ := setupRouter(t)
	seed(store, models.StatusDone, "a", "b", "c")

	rec := do(t, router, http.MethodGet, "/items/count?status=DONE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/items/count", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateItem(t *testing.T) {
	router, _, notifier := setupRouter(t)

	rec := do(t, router, http.MethodPost, "/items", gin.H{
		"title":         "write tests",
		"status":        "IN_PROGRESS",
		"priority":      "HIGH",
		"deadline":      "2025-02-01",
		"orderInColumn": 0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusInProgress, created.Status)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, events.EventItemsChanged, notifier.events[0].Type)
	assert.Equal(t, "client-a", notifier.events[0].Origin)
	assert.Equal(t, []models.Status{models.StatusInProgress}, notifier.events[0].Statuses)
}

func TestCreateItem_Validation(t *testing.T) {
	router, _, notifier := setupRouter(t)

	rec := do(t, router, http.MethodPost, "/items", gin.H{"status": "TO_DO"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/items", gin.H{
		"title": "x", "status": "LATER", "priority": "LOW", "deadline": "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, notifier.events)
}

func TestUpdateItem(t *testing.T) {
	router, store, notifier := setupRouter(t)
	tasks := seed(store, models.StatusToDo, "a")

	rec := do(t, router, http.MethodPatch, "/items/"+tasks[0].ID, gin.H{"status": "DONE", "orderInColumn": 4})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, 4, updated.OrderInColumn)

	require.Len(t, notifier.events, 1)
	assert.Empty(t, notifier.events[0].Statuses)
}

func TestUpdateItem_Errors(t *testing.T) {
	router, store, _ := setupRouter(t)
	tasks := seed(store, models.StatusToDo, "a")

	rec := do(t, router, http.MethodPatch, "/items/missing", gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, rec).Code)

	rec = do(t, router, http.MethodPatch, "/items/"+tasks[0].ID, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertOrder(t *testing.T) {
	router, store, _ := setupRouter(t)
	tasks := seed(store, models.StatusToDo, "a", "b")

	rec := do(t, router, http.MethodPost, "/items/upsert", []models.OrderUpdate{
		{ID: tasks[0].ID, OrderInColumn: 1},
		{ID: tasks[1].ID, OrderInColumn: 0},
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	a, _ := store.Get(tasks[0].ID)
	assert.Equal(t, 1, a.OrderInColumn)

	rec = do(t, router, http.MethodPost, "/items/upsert", []models.OrderUpdate{{ID: "missing"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteItem(t *testing.T) {
	router, store, _ := setupRouter(t)
	tasks := seed(store, models.StatusToDo, "a")

	rec := do(t, router, http.MethodDelete, "/items/"+tasks[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodDelete, "/items/"+tasks[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreFailureIsInternal(t *testing.T) {
	router, store, _ := setupRouter(t)
	store.Fail(testutil.OpList, errors.New("disk on fire"))

	rec := do(t, router, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, CodeInternal, apiErr.Code)
	assert.NotContains(t, apiErr.Message, "disk on fire")
}

func TestExecutors(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := do(t, router, http.MethodGet, "/executors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = do(t, router, http.MethodPost, "/executors", gin.H{"name": "Ada", "email": "ada@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/executors", gin.H{"name": "Bob", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/executors", nil)
	var list []models.Executor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Ada", list[0].Name)
}

func TestHealth(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := do(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","daemon":{"connected_clients":2}}`, rec.Body.String())
}
