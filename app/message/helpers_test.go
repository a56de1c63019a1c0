package message

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"whispr/feedback-api/internal"
	"whispr/feedback-api/internal/model"
	"whispr/feedback-api/internal/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newDeps(s *storetest.MemStore) *internal.Deps {
	return &internal.Deps{
		DB:  s,
		Now: func() time.Time { return testNow },
	}
}

// newRouter fakes the middleware chain: requestID always, userID when a
// session user is given.
func newRouter(sessionUserID string, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("requestID", "test")
		if sessionUserID != "" {
			c.Set("userID", sessionUserID)
		}
		c.Next()
	})

	register(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type apiResponse struct {
	Success             bool            `json:"success"`
	Message             string          `json:"message"`
	IsAcceptingMessages *bool           `json:"isAcceptingMessages"`
	Messages            []model.Message `json:"messages"`
	Suggestions         []string        `json:"suggestions"`
	UpdatedUser         *model.User     `json:"updatedUser"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
