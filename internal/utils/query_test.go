package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestQueryLimit(t *testing.T) {
	limit, err := QueryLimit(contextWithQuery(""), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, limit)

	limit, err = QueryLimit(contextWithQuery("limit=3"), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, limit)

	_, err = QueryLimit(contextWithQuery("limit=many"), 10)
	assert.Error(t, err)
}

func TestQueryFloat(t *testing.T) {
	v, present, err := QueryFloat(contextWithQuery("lat=9.69"), "lat")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 9.69, v)

	_, present, err = QueryFloat(contextWithQuery("lat="), "lat")
	require.NoError(t, err)
	assert.False(t, present)

	_, present, err = QueryFloat(contextWithQuery("lat=north"), "lat")
	assert.True(t, present)
	assert.EqualError(t, err, "lat must be a number")
}
