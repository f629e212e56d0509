package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/estilobarber/barberia-api/internal/config"
	"github.com/estilobarber/barberia-api/internal/models"
)

const testSecret = "secreto-de-prueba"

func testCfg() *config.Config {
	return &config.Config{JWTSecret: testSecret}
}

func mintToken(t *testing.T, secret string, userID uint, role models.Role) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(userID),
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user": c.MustGet(ContextUserID),
		})
	})
	r.GET("/protegido", chain...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := protectedRouter(AuthMiddleware(testCfg()))

	token := mintToken(t, testSecret, 42, models.RoleCliente)
	w := doGet(r, "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r := protectedRouter(AuthMiddleware(testCfg()))

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abcdef"},
		{name: "garbage token", header: "Bearer no.es.jwt"},
		{name: "wrong secret", header: "Bearer " + mintToken(t, "otro-secreto", 42, models.RoleCliente)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doGet(r, tc.header); w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r := protectedRouter(AuthMiddleware(testCfg()))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(42),
		"role": string(models.RoleCliente),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if w := doGet(r, "Bearer "+signed); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	r := protectedRouter(
		AuthMiddleware(testCfg()),
		RequireRoles(models.RoleEmpleado, models.RoleDueno, models.RoleAdministrador),
	)

	staff := doGet(r, "Bearer "+mintToken(t, testSecret, 7, models.RoleEmpleado))
	if staff.Code != http.StatusOK {
		t.Errorf("empleado: status = %d, want 200", staff.Code)
	}

	customer := doGet(r, "Bearer "+mintToken(t, testSecret, 8, models.RoleCliente))
	if customer.Code != http.StatusForbidden {
		t.Errorf("cliente: status = %d, want 403", customer.Code)
	}
}
