package message

import (
	"net/http"
	"testing"

	"whispr/feedback-api/internal/model"
	"whispr/feedback-api/internal/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func acceptRouter(s *storetest.MemStore, sessionUserID string) *gin.Engine {
	d := newDeps(s)

	return newRouter(sessionUserID, func(r *gin.Engine) {
		r.GET("/api/accept-messages", func(c *gin.Context) { AcceptStatus(c, d) })
		r.POST("/api/accept-messages", func(c *gin.Context) { SetAcceptStatus(c, d) })
	})
}

func TestAcceptStatus(t *testing.T) {
	s := storetest.New()
	seeded := s.Seed(model.User{Username: "alice", IsVerified: true, IsAcceptingMessages: true})
	r := acceptRouter(s, seeded.ID.Hex())

	w := doJSON(t, r, http.MethodGet, "/api/accept-messages", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	require.True(t, resp.Success)
	require.NotNil(t, resp.IsAcceptingMessages)
	require.True(t, *resp.IsAcceptingMessages)
}

func TestSetAcceptStatus(t *testing.T) {
	t.Run("disables and re-enables intake", func(t *testing.T) {
		s := storetest.New()
		seeded := s.Seed(model.User{Username: "alice", IsVerified: true, IsAcceptingMessages: true})
		r := acceptRouter(s, seeded.ID.Hex())

		w := doJSON(t, r, http.MethodPost, "/api/accept-messages", gin.H{"acceptMessages": false})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode(t, w)
		require.True(t, resp.Success)
		require.NotNil(t, resp.UpdatedUser)
		require.False(t, resp.UpdatedUser.IsAcceptingMessages)

		w = doJSON(t, r, http.MethodGet, "/api/accept-messages", nil)
		require.False(t, *decode(t, w).IsAcceptingMessages)

		w = doJSON(t, r, http.MethodPost, "/api/accept-messages", gin.H{"acceptMessages": true})
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, decode(t, w).UpdatedUser.IsAcceptingMessages)
	})

	t.Run("missing field is a bad request", func(t *testing.T) {
		s := storetest.New()
		seeded := s.Seed(model.User{Username: "alice", IsVerified: true})

		w := doJSON(t, acceptRouter(s, seeded.ID.Hex()), http.MethodPost, "/api/accept-messages", gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("session user vanished", func(t *testing.T) {
		r := acceptRouter(storetest.New(), bson.NewObjectID().Hex())

		w := doJSON(t, r, http.MethodPost, "/api/accept-messages", gin.H{"acceptMessages": true})
		require.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/accept-messages", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
