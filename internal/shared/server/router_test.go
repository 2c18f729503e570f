package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"studykit-backend/internal/shared/config"
)

func TestNewRouterKeepsCallerMode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := NewRouter(RouterDeps{Config: config.Config{}})
	if gin.Mode() != gin.TestMode {
		t.Fatalf("expected gin.TestMode to survive, got %q", gin.Mode())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7070": ":7070",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
