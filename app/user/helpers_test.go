package user

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"whispr/feedback-api/internal"
	"whispr/feedback-api/internal/storetest"
	"whispr/feedback-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type sentMail struct {
	To       string
	Username string
	Code     string
}

type stubMailer struct {
	Sent []sentMail
	Fail error
}

func (m *stubMailer) SendVerification(to, username, code string) error {
	if m.Fail != nil {
		return m.Fail
	}

	m.Sent = append(m.Sent, sentMail{To: to, Username: username, Code: code})
	return nil
}

func newDeps(s *storetest.MemStore) (*internal.Deps, *stubMailer) {
	mailer := &stubMailer{}

	return &internal.Deps{
		DB:     s,
		Argon:  security.New(),
		Mailer: mailer,
		Now:    func() time.Time { return testNow },
	}, mailer
}

func newRouter(register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("requestID", "test")
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
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
