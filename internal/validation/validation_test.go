package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/adoption-service/internal/domain"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

func TestRequire(t *testing.T) {
	v := New()
	v.Require("name", "")
	v.Require("email", "   ")
	v.Require("phone", "555-0100")

	assert.False(t, v.Valid())
	assert.Contains(t, v.Fields()["name"], "The name field is required.")
	assert.Contains(t, v.Fields()["email"], "The email field is required.")
	assert.NotContains(t, v.Fields(), "phone")
}

func TestLengthHelpers(t *testing.T) {
	v := New()
	v.MaxLen("title", strings.Repeat("x", 31), 30)
	v.MinLen("password", "short", 8)
	v.MaxLen("headline", "fine", 120)

	assert.Contains(t, v.Fields()["title"], "The title field must not be greater than 30 characters.")
	assert.Contains(t, v.Fields()["password"], "The password field must be at least 8 characters.")
	assert.NotContains(t, v.Fields(), "headline")
}

func TestMaxLenCountsRunes(t *testing.T) {
	v := New()
	v.MaxLen("title", strings.Repeat("é", 30), 30)
	assert.True(t, v.Valid())
}

func TestEmail(t *testing.T) {
	valid := []string{"jane@example.com", "a.b+c@sub.domain.org"}
	for _, addr := range valid {
		v := New()
		v.Email("email", addr)
		assert.True(t, v.Valid(), addr)
	}

	invalid := []string{"plain", "no@tld", "spaces in@example.com", "@example.com"}
	for _, addr := range invalid {
		v := New()
		v.Email("email", addr)
		assert.Contains(t, v.Fields()["email"], "The email field must be a valid email address.", addr)
	}
}

func TestEnum(t *testing.T) {
	v := New()
	v.Enum("status", "transit", domain.ValidPetStatus)
	v.Enum("type", "bird", domain.ValidPetType)

	assert.NotContains(t, v.Fields(), "status")
	assert.Contains(t, v.Fields()["type"], "The selected type is invalid.")
}

func TestHelpersSkipFieldsThatFailedRequire(t *testing.T) {
	v := New()
	v.Require("email", "")
	v.Email("email", "")
	v.MaxLen("email", "", 255)

	require.Len(t, v.Fields()["email"], 1)
	assert.Contains(t, v.Fields()["email"], "The email field is required.")
}

func TestErr(t *testing.T) {
	v := New()
	require.NoError(t, v.Err())

	v.Require("name", "")
	err := v.Err()
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	assert.Equal(t, "Validation failed", domainErr.Message)
	assert.Contains(t, domainErr.Fields["name"], "The name field is required.")
}
