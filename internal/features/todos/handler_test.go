package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/todoapp/internal/pkg/response"
)

var handlerToday = fixedClock(2026, time.October, 15)

func newTestRouter(t *testing.T, repo Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewService(repo, WithClock(handlerToday)))
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func createTodo(t *testing.T, r *gin.Engine, body map[string]interface{}) Todo {
	t.Helper()
	w := do(r, http.MethodPost, "/api/todos", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[Todo](t, w)
}

func TestHandler_CreateAndGet(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))

	created := createTodo(t, r, map[string]interface{}{
		"id":       123,
		"title":    "  Buy milk  ",
		"priority": "high",
		"category": "Home",
		"dueDate":  "2026-10-20",
	})
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, int64(123), created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, PriorityHigh, created.Priority)
	assert.False(t, created.Completed)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-10-20", created.DueDate.String())

	w := do(r, http.MethodGet, "/api/todos/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]interface{}](t, w)
	assert.Equal(t, "Buy milk", got["title"])
	assert.Equal(t, "HIGH", got["priority"])
	assert.Equal(t, "2026-10-20", got["dueDate"])
	assert.Nil(t, got["description"])

	w = do(r, http.MethodGet, "/api/todos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]Todo](t, w), 1)
}

func TestHandler_CreateDefaultsPriority(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))

	created := createTodo(t, r, map[string]interface{}{"title": "Walk dog"})
	assert.Equal(t, PriorityMedium, created.Priority)
	assert.Nil(t, created.DueDate)
}

func TestHandler_CreateValidation(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))

	tests := map[string]struct {
		body interface{}
		code string
	}{
		"missing title":    {map[string]interface{}{"description": "x"}, "VALIDATION_FAILED"},
		"blank title":      {map[string]interface{}{"title": "   "}, "VALIDATION_FAILED"},
		"unknown priority": {map[string]interface{}{"title": "x", "priority": "URGENT"}, "VALIDATION_FAILED"},
		"bad date":         {map[string]interface{}{"title": "x", "dueDate": "31/12/2026"}, "INVALID_JSON"},
		"malformed json":   {`{"title":`, "INVALID_JSON"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/todos", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode[response.ErrorResponse](t, w).Code)
		})
	}

	w := do(r, http.MethodGet, "/api/todos", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_CreateMultibyteTitle(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))
	title := strings.Repeat("é", 200)

	created := createTodo(t, r, map[string]interface{}{"title": title})
	assert.Equal(t, title, created.Title)

	w := do(r, http.MethodPost, "/api/todos", map[string]interface{}{"title": strings.Repeat("é", 256)})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode[response.ErrorResponse](t, w).Code)
}

func TestHandler_SearchNonASCII(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))
	createTodo(t, r, map[string]interface{}{"title": "ÄPFEL kaufen"})
	createTodo(t, r, map[string]interface{}{"title": "Birnen kaufen"})

	w := do(r, http.MethodGet, "/api/todos/search?q="+url.QueryEscape("äpfel"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"ÄPFEL kaufen"}, titles(decode[[]Todo](t, w)))
}

func TestHandler_Update(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))
	created := createTodo(t, r, map[string]interface{}{"title": "Draft", "category": "Work", "priority": "LOW"})

	w := do(r, http.MethodPut, "/api/todos/"+itoa(created.ID), map[string]interface{}{
		"title":     "Final",
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode[Todo](t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Final", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, PriorityMedium, updated.Priority)
	assert.Nil(t, updated.Category)

	w = do(r, http.MethodPut, "/api/todos/9999", map[string]interface{}{"title": "ghost"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[response.ErrorResponse](t, w).Code)
}

func TestHandler_Delete(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))
	created := createTodo(t, r, map[string]interface{}{"title": "Temporary"})
	path := "/api/todos/" + itoa(created.ID)

	w := do(r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ToggleTwice(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))
	created := createTodo(t, r, map[string]interface{}{"title": "Flip me"})
	path := "/api/todos/" + itoa(created.ID) + "/toggle"

	w := do(r, http.MethodPatch, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[Todo](t, w).Completed)

	w = do(r, http.MethodPatch, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[Todo](t, w).Completed)

	w = do(r, http.MethodPatch, "/api/todos/777/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_InvalidID(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))

	for _, path := range []string{"/api/todos/abc", "/api/todos/0", "/api/todos/-3"} {
		w := do(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "INVALID_ID", decode[response.ErrorResponse](t, w).Code)
	}
}

func TestHandler_Filters(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))

	milk := createTodo(t, r, map[string]interface{}{"title": "Buy Milk", "category": "home", "dueDate": "2026-10-14"})
	createTodo(t, r, map[string]interface{}{"title": "Ship release", "category": "Work", "priority": "HIGH", "completed": true, "dueDate": "2026-10-01"})
	createTodo(t, r, map[string]interface{}{"title": "Plan trip", "category": "Work", "priority": "HIGH", "dueDate": "2026-10-15"})
	createTodo(t, r, map[string]interface{}{"title": "Read book"})

	listTitles := func(path string) []string {
		w := do(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		return titles(decode[[]Todo](t, w))
	}

	assert.Equal(t, []string{"Ship release"}, listTitles("/api/todos/completed"))
	assert.Equal(t, []string{"Buy Milk", "Plan trip", "Read book"}, listTitles("/api/todos/incomplete"))
	assert.Equal(t, []string{"Buy Milk"}, listTitles("/api/todos/search?q=milk"))
	assert.Equal(t, []string{"Ship release", "Plan trip"}, listTitles("/api/todos/category/Work"))
	assert.Empty(t, listTitles("/api/todos/category/work"))
	assert.Equal(t, []string{"Ship release", "Plan trip"}, listTitles("/api/todos/priority/high"))
	assert.Equal(t, []string{"Buy Milk"}, listTitles("/api/todos/overdue"))

	w := do(r, http.MethodGet, "/api/todos/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Work","home"]`, w.Body.String())

	w = do(r, http.MethodGet, "/api/todos/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":4,"completed":1,"active":3,"overdue":1}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/todos/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/todos/priority/urgent", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.NotZero(t, milk.ID)
}

func TestHandler_CategoryWithSlash(t *testing.T) {
	r := newTestRouter(t, newTestSQLRepository(t))
	createTodo(t, r, map[string]interface{}{"title": "Prune roses", "category": "Home/Garden"})
	createTodo(t, r, map[string]interface{}{"title": "Vacuum", "category": "Home"})

	w := do(r, http.MethodGet, "/api/todos/category/Home/Garden", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Prune roses"}, titles(decode[[]Todo](t, w)))

	w = do(r, http.MethodGet, "/api/todos/category/Home%2FGarden", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Prune roses"}, titles(decode[[]Todo](t, w)))

	w = do(r, http.MethodGet, "/api/todos/category/Home", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Vacuum"}, titles(decode[[]Todo](t, w)))
}

type failingRepository struct {
	Repository
}

func (failingRepository) FindAll(ctx context.Context) ([]Todo, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) FindByID(ctx context.Context, id int64) (*Todo, error) {
	return nil, errors.New("connection refused")
}

func TestHandler_StorageFailureIs500(t *testing.T) {
	r := newTestRouter(t, failingRepository{})

	for _, path := range []string{"/api/todos", "/api/todos/1", "/api/todos/categories", "/api/todos/stats"} {
		w := do(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, "DATABASE_ERROR", decode[response.ErrorResponse](t, w).Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
