package helpers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

func newContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = params
	return c
}

func TestParseIDParam(t *testing.T) {
	id, err := ParseIDParam(newContext("/", gin.Params{{Key: "id", Value: "41"}}), "id")
	if err != nil || id != 41 {
		t.Fatalf("got %d %v", id, err)
	}
	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := ParseIDParam(newContext("/", gin.Params{{Key: "id", Value: bad}}), "id")
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("%q: expected validation error, got %v", bad, err)
		}
	}
}

func TestParseOptionalIDQuery(t *testing.T) {
	got, err := ParseOptionalIDQuery(newContext("/?messId=3", nil), "messId")
	if err != nil || got == nil || *got != 3 {
		t.Fatalf("got %v %v", got, err)
	}
	got, err = ParseOptionalIDQuery(newContext("/", nil), "messId")
	if err != nil || got != nil {
		t.Fatalf("missing param should be nil, got %v %v", got, err)
	}
	if _, err := ParseOptionalIDQuery(newContext("/?messId=x", nil), "messId"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
