package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestJSONLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "u-1"); c.Next() })
	r.Use(JSONLogger())
	r.GET("/v1/montages/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/montages/m-1", nil))

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" || entry["msg"] != "request" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry["route"] != "/v1/montages/:id" || entry["actor_id"] != "u-1" {
		t.Fatalf("unexpected route/actor: %+v", entry)
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Fatalf("unexpected status: %v", entry["status"])
	}
}
