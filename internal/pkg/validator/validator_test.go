package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		assert.True(t, ok, s)
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://cdn.example.com/a.png"))
	assert.True(t, IsValidURL("http://localhost:8080/x"))
	assert.False(t, IsValidURL("ftp://example.com/a.png"))
	assert.False(t, IsValidURL("/relative/path"))
	assert.False(t, IsValidURL("not a url"))
}

func TestIsValidEmployeeID(t *testing.T) {
	assert.True(t, IsValidEmployeeID("EMP-001"))
	assert.True(t, IsValidEmployeeID("jane.doe_2"))
	assert.False(t, IsValidEmployeeID(""))
	assert.False(t, IsValidEmployeeID("has space"))
	assert.False(t, IsValidEmployeeID("slash/id"))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "email is invalid"},
	}
	assert.Equal(t, "name: name is required; email: email is invalid", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "email is invalid"},
	}
	assert.Equal(t, map[string]string{
		"name":  "name is required",
		"email": "email is invalid",
	}, errs.ToMap())
}
