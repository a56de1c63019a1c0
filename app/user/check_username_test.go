package user

import (
	"errors"
	"net/http"
	"testing"

	"whispr/feedback-api/internal/model"
	"whispr/feedback-api/internal/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func checkRouter(s *storetest.MemStore) *gin.Engine {
	d, _ := newDeps(s)

	return newRouter(func(r *gin.Engine) {
		r.GET("/api/check-username-unique", func(c *gin.Context) { CheckUsernameUnique(c, d) })
	})
}

func TestCheckUsernameUnique(t *testing.T) {
	t.Run("free username is unique", func(t *testing.T) {
		r := checkRouter(storetest.New())

		w := doJSON(t, r, http.MethodGet, "/api/check-username-unique?username=alice", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode(t, w)
		require.True(t, resp.Success)
		require.Equal(t, "Username is unique", resp.Message)
	})

	t.Run("verified holder blocks the name", func(t *testing.T) {
		s := storetest.New()
		s.Seed(model.User{Username: "alice", IsVerified: true})

		w := doJSON(t, checkRouter(s), http.MethodGet, "/api/check-username-unique?username=alice", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Username already exists", decode(t, w).Message)
	})

	t.Run("abandoned unverified signup does not block reuse", func(t *testing.T) {
		s := storetest.New()
		s.Seed(model.User{Username: "alice", IsVerified: false})

		w := doJSON(t, checkRouter(s), http.MethodGet, "/api/check-username-unique?username=alice", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, decode(t, w).Success)
	})

	t.Run("match is case sensitive", func(t *testing.T) {
		s := storetest.New()
		s.Seed(model.User{Username: "Alice", IsVerified: true})

		w := doJSON(t, checkRouter(s), http.MethodGet, "/api/check-username-unique?username=alice", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid username lists all violations", func(t *testing.T) {
		w := doJSON(t, checkRouter(storetest.New()), http.MethodGet, "/api/check-username-unique?username=%21", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := decode(t, w)
		require.False(t, resp.Success)
		require.Contains(t, resp.Message, "at least 2 characters")
		require.Contains(t, resp.Message, "letters, numbers and underscores")
	})

	t.Run("store failure yields generic error", func(t *testing.T) {
		s := storetest.New()
		s.FailWith = errors.New("connection reset")

		w := doJSON(t, checkRouter(s), http.MethodGet, "/api/check-username-unique?username=alice", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "Error checking username", decode(t, w).Message)
	})
}
