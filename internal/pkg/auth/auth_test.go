package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func testJWT() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "messdesk"})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWT()
	user := &models.User{ID: 7, Email: "asha@campus.edu", RoleType: models.RoleSupervisor}

	token, expiresIn, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d", expiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	session := claims.Session()
	if session.UserID != 7 || session.Role != models.RoleSupervisor || session.Email != user.Email {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := testJWT()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.GenerateToken(&models.User{ID: 1, Email: "a@b.c", RoleType: models.RoleStudent})
	if err != nil {
		t.Fatal(err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(token); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "messdesk"})
	token, _, _ := other.GenerateToken(&models.User{ID: 1, Email: "a@b.c", RoleType: models.RoleStudent})

	if _, err := testJWT().ValidateToken(token); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestUnknownRoleRejected(t *testing.T) {
	svc := testJWT()
	token, _, _ := svc.GenerateToken(&models.User{ID: 1, Email: "a@b.c", RoleType: "janitor"})
	if _, err := svc.ValidateAndExtractClaims(token); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, err := ExtractBearerToken(""); !errors.Is(err, apperrors.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	tok, err := ExtractBearerToken("Bearer abc")
	if err != nil || tok != "abc" {
		t.Fatalf("got %q %v", tok, err)
	}
	tok, _ = ExtractBearerToken("abc")
	if tok != "abc" {
		t.Fatalf("raw token not passed through: %q", tok)
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Check(hash, "s3cret-pass") || h.Check(hash, "wrong") {
		t.Fatal("password check mismatch")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatal("package-level check should accept the hash")
	}
	if NewPasswordHasher(0).Cost != BcryptCost {
		t.Fatal("out of range cost should fall back to default")
	}
}
