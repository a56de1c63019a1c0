package message

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"whispr/feedback-api/internal/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubSuggester struct {
	out  []string
	fail error
}

func (s stubSuggester) Suggest(context.Context) ([]string, error) {
	return s.out, s.fail
}

func suggestRouter(sug stubSuggester) *gin.Engine {
	d := newDeps(storetest.New())
	d.Suggest = sug

	return newRouter("", func(r *gin.Engine) {
		r.POST("/api/suggest-messages", func(c *gin.Context) { Suggest(c, d) })
	})
}

func TestSuggest(t *testing.T) {
	t.Run("returns candidates", func(t *testing.T) {
		r := suggestRouter(stubSuggester{out: []string{"q1", "q2", "q3"}})

		w := doJSON(t, r, http.MethodPost, "/api/suggest-messages", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, []string{"q1", "q2", "q3"}, decode(t, w).Suggestions)
	})

	t.Run("backend failure is generic", func(t *testing.T) {
		r := suggestRouter(stubSuggester{fail: errors.New("quota exceeded")})

		w := doJSON(t, r, http.MethodPost, "/api/suggest-messages", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)

		resp := decode(t, w)
		require.False(t, resp.Success)
		require.Equal(t, "Error generating suggestions", resp.Message)
	})
}
