// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemark/stockops-backend/internal/utils"
)

func roleSetter(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_role", role)
		c.Next()
	}
}

func adminRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{}
	if role != "" {
		handlers = append(handlers, roleSetter(role))
	}
	handlers = append(handlers, AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin", handlers...)
	return r
}

func TestAdminRequiredAllowsAdmin(t *testing.T) {
	w := httptest.NewRecorder()
	adminRouter("admin").ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequiredRejectsStaff(t *testing.T) {
	w := httptest.NewRecorder()
	adminRouter("staff").ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRequiredRejectsMissingRole(t *testing.T) {
	w := httptest.NewRecorder()
	adminRouter("").ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	token, err := utils.GenerateJWT(uuid.New(), "admin", "admin", 1)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", AuthRequired(), func(c *gin.Context) {
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
