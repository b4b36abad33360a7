package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-lists-backend/internal/domain"
)

// withLogger simulates RequestID + the request-scoped logger.
func withLogger(rid string, buf *bytes.Buffer) gin.HandlerFunc {
	logger := zerolog.New(buf)
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Set("logger", &logger)
		c.Next()
	}
}

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(withLogger("rid-500", &buf))
	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeInternal || resp.Message != "kaboom" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_4xx_NotLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(withLogger("rid-404", &buf))
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "nope")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json 404: %v", err)
	}
	if er.RequestID != "rid-404" || er.Code != ErrCodeNotFound || er.Message != "nope" {
		t.Fatalf("unexpected 404 body: %+v", er)
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx must not be logged by fail: %s", buf.String())
	}
}

func Test_ok_WritesJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusCreated || w.Body.String() != `{"ok":true}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func Test_renderError_LogsKindExceptNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		err     error
		logged  bool
		kindStr string
	}{
		{domain.NotFound("list.get"), false, ""},
		{domain.QueryError("list.all", errors.New("no such table: list")), true, "query_error"},
		{domain.PoolError(errors.New("sql: database is closed")), true, "pool_error"},
	} {
		var buf bytes.Buffer
		r := gin.New()
		r.Use(withLogger("rid", &buf))
		var ginErrs int
		r.GET("/x", func(c *gin.Context) {
			renderError(c, tc.err)
			ginErrs = len(c.Errors)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		if ginErrs != 1 {
			t.Fatalf("%v: error must be attached to the gin context", tc.err)
		}
		if got := buf.Len() > 0; got != tc.logged {
			t.Fatalf("%v: logged=%v want %v (%s)", tc.err, got, tc.logged, buf.String())
		}
		if tc.logged && !strings.Contains(buf.String(), `"kind":"`+tc.kindStr+`"`) {
			t.Fatalf("log lacks kind %q: %s", tc.kindStr, buf.String())
		}
	}
}

func Test_unwrapCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	if got := unwrapCause(fmt.Errorf("ctx: %w", domain.PoolError(cause))); got != cause {
		t.Fatalf("unwrapCause = %v", got)
	}
	plain := errors.New("plain")
	if got := unwrapCause(plain); got != plain {
		t.Fatalf("unwrapCause(plain) = %v", got)
	}
}
