package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"raildesk/internal/domain"

	"github.com/gin-gonic/gin"
)

func domainErrorStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondDomainError(c, err)
	return rec.Code, rec.Body.String()
}

func TestRespondDomainErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ValidationError{Field: "maxPrice", Msg: "expected a decimal amount"}, http.StatusBadRequest},
		{domain.NotFoundError{Resource: "draft ticket"}, http.StatusNotFound},
		{domain.ConflictError{Resource: "account", Msg: "email or username already registered"}, http.StatusConflict},
		{domain.InternalError{Msg: "connection search failed", Err: errors.New("boom")}, http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, body := domainErrorStatus(t, tc.err)
		if status != tc.status {
			t.Fatalf("%T mapped to %d, want %d", tc.err, status, tc.status)
		}
		if status == http.StatusInternalServerError && strings.Contains(body, "boom") {
			t.Fatalf("internal cause must not leak to the client: %s", body)
		}
	}
}
