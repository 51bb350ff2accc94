package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSuccessAndErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// Test Success
	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "bar", body["foo"])

	// Test Error
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad request", "BAD_REQ")
	require.Equal(t, 400, w.Code)
	require.True(t, c.IsAborted())
	var bodyErr map[string]any
	err = json.Unmarshal(w.Body.Bytes(), &bodyErr)
	require.NoError(t, err)
	require.Equal(t, "bad request", bodyErr["error"])
	require.Equal(t, "BAD_REQ", bodyErr["code"])
}

func TestErrorHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		code   string
	}{
		{"validation", func(c *gin.Context) { ValidationFailed(c, "title is required") }, 400, "VALIDATION_FAILED"},
		{"bind", func(c *gin.Context) { BindJSONError(c, nil) }, 400, "INVALID_JSON"},
		{"invalid id", func(c *gin.Context) { InvalidID(c, "Invalid todo ID") }, 400, "INVALID_ID"},
		{"not found", func(c *gin.Context) { ResourceNotFound(c, "Todo not found") }, 404, "NOT_FOUND"},
		{"database", func(c *gin.Context) { DatabaseError(c, "boom") }, 500, "DATABASE_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tc.call(c)

			require.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tc.code, body.Code)
		})
	}
}

func TestNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/x", func(c *gin.Context) { NoContent(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/x", nil))

	require.Equal(t, 204, w.Code)
	require.Empty(t, w.Body.Bytes())
}
