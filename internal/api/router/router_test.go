package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SaiseetharamModugumudi/HRMS-project/config"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/api/handler"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/service"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockPinger struct{ err error }

func (m *mockPinger) PingContext(_ context.Context) error { return m.err }

func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8000, BodyLimit: 1 << 20},
		Auth: config.AuthConfig{
			Enabled:           authEnabled,
			JWTSecret:         "router-test-secret-key",
			AccessTokenTTL:    time.Hour,
			AdminUsername:     "admin",
			AdminPasswordHash: "$2a$10$invalid",
		},
		App: config.AppConfig{Timezone: "UTC"},
	}
}

// newTestEngine 仅组装路由，不触达数据库的请求
func newTestEngine(t *testing.T, cfg *config.Config, db Pinger) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, nil, nil, nil, jwtMgr, logger)
	h := handler.NewHandler(svc, nil, nil)

	r, err := Setup(cfg, h, jwtMgr, nil, db, logger)
	if err != nil {
		t.Fatalf("Setup 应成功: %v", err)
	}
	return r
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		wantCode int
	}{
		{"无数据库", nil, http.StatusOK},
		{"数据库正常", &mockPinger{}, http.StatusOK},
		{"数据库不可用", &mockPinger{err: errors.New("down")}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(t, testConfig(false), tt.db)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.wantCode {
				t.Errorf("期望 %d，实际=%d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestWriteRoutes_RequireTokenWhenAuthEnabled(t *testing.T) {
	r := newTestEngine(t, testConfig(true), nil)

	for _, path := range []string{"/api/employees/", "/api/attendance/", "/api/employees/import/"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s 未携带 Token 期望 401，实际=%d", path, w.Code)
		}
	}
}

func TestWriteRoutes_OpenWhenAuthDisabled(t *testing.T) {
	r := newTestEngine(t, testConfig(false), nil)

	// 绑定失败在访问数据库之前返回
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/employees/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际=%d", w.Code)
	}
}

func TestLogin_DisabledReturns404(t *testing.T) {
	r := newTestEngine(t, testConfig(false), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", strings.NewReader(`{"username":"admin","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
}

func TestLiveRoute_DisabledWithoutHub(t *testing.T) {
	r := newTestEngine(t, testConfig(false), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/attendance/", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
}

func TestNewEmployeeForm_RendersWithoutStore(t *testing.T) {
	r := newTestEngine(t, testConfig(false), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/new/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `name="designation"`) {
		t.Error("表单应包含职位下拉")
	}
}
