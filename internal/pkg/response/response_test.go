package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestOKEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		OK(c, gin.H{"value": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Empty(t, env.Message)
	assert.NotNil(t, env.Data)
}

func TestErrorEnvelope(t *testing.T) {
	cases := []struct {
		fn     func(c *gin.Context)
		status int
	}{
		{func(c *gin.Context) { BadRequest(c, "bad") }, http.StatusBadRequest},
		{func(c *gin.Context) { Unauthorized(c, "no") }, http.StatusUnauthorized},
		{func(c *gin.Context) { Forbidden(c, "no") }, http.StatusForbidden},
		{func(c *gin.Context) { NotFound(c, "missing") }, http.StatusNotFound},
		{func(c *gin.Context) { Conflict(c, "conflict") }, http.StatusConflict},
		{func(c *gin.Context) { TooManyRequests(c, "slow down") }, http.StatusTooManyRequests},
		{func(c *gin.Context) { GatewayError(c, "upstream") }, http.StatusBadGateway},
		{func(c *gin.Context) { InternalError(c, "boom") }, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := record(tc.fn)
		assert.Equal(t, tc.status, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
		assert.Nil(t, env.Data)
	}
}
