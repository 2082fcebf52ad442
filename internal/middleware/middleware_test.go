package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/deliciae/discovery-core/internal/config"
	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-test-secret")
}

func TestPreferredLanguage(t *testing.T) {
	assert.Equal(t, "en", preferredLanguage(""))
	assert.Equal(t, "ml", preferredLanguage("ml-IN,ml;q=0.9,en;q=0.8"))
	assert.Equal(t, "ml", preferredLanguage("ml"))
	assert.Equal(t, "en", preferredLanguage("fr-FR,fr;q=0.9"))
}

func principalEcho(c *gin.Context) {
	p, ok := utils.GetPrincipalFromContext(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, p.Role.Name())
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := gin.New()
	r.GET("/", AuthRequired(), principalEcho)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "garbage").Code)

	estID := uuid.New()
	token, err := utils.GenerateJWT(uuid.New(), models.RoleRestaurant, &estID, time.Hour)
	require.NoError(t, err)
	w := serve(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleRestaurant, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/", OptionalAuth(), principalEcho)

	assert.Equal(t, "anonymous", serve(r, "").Body.String())
	assert.Equal(t, "anonymous", serve(r, "garbage").Body.String())

	token, err := utils.GenerateJWT(uuid.New(), models.RoleCustomer, nil, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, serve(r, token).Body.String())
}

func TestRoleRequired(t *testing.T) {
	r := gin.New()
	r.GET("/", AuthRequired(), RoleRequired(models.RoleRestaurant, models.RoleStaff), principalEcho)

	customer, err := utils.GenerateJWT(uuid.New(), models.RoleCustomer, nil, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve(r, customer).Code)

	estID := uuid.New()
	staff, err := utils.GenerateJWT(uuid.New(), models.RoleStaff, &estID, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve(r, staff).Code)
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	defer rl.Stop()

	rl.getVisitor("10.0.0.1")
	rl.getVisitor("10.0.0.2")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * visitorTTL)

	rl.evictIdle(time.Now())

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")

	rl.Stop()
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"https://app.deliciae.in"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.deliciae.in")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.deliciae.in", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecoveryUsesEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"INTERNAL_ERROR"`)
}
