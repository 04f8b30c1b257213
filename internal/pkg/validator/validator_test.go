package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "vishnu_@gmail.com"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2024/01/20"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	for _, c := range []string{"09:00:00", "18:30:00", "23:59", "00:00"} {
		_, ok := IsValidClock(c)
		assert.True(t, ok, c)
	}
	for _, c := range []string{"24:00:00", "9am", "", "18:61:00"} {
		_, ok := IsValidClock(c)
		assert.False(t, ok, c)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"approve", "reject"}
	assert.True(t, IsInSlice("approve", slice))
	assert.False(t, IsInSlice("Approve", slice))
	assert.False(t, IsInSlice("", nil))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is required"},
	}
	assert.Equal(t, "email: email is required; password: password is required", errs.Error())
	assert.Equal(t, map[string]string{
		"email":    "email is required",
		"password": "password is required",
	}, errs.ToMap())
}

type child struct {
	Name string `json:"employee_name" validate:"notblank"`
}

type sample struct {
	Email    string  `json:"email" validate:"required,email"`
	Progress *int    `json:"progress" validate:"required,min=0,max=100"`
	Date     string  `json:"start_date" validate:"required,date"`
	Decision string  `json:"decision" validate:"required,oneof=approve reject"`
	Children []child `json:"children" validate:"required,min=1,dive"`
}

func TestStruct(t *testing.T) {
	progress := 50

	t.Run("valid", func(t *testing.T) {
		s := sample{
			Email:    "a@b.co",
			Progress: &progress,
			Date:     "2024-01-20",
			Decision: "approve",
			Children: []child{{Name: "Harika"}},
		}
		assert.NoError(t, Struct(s))
	})

	t.Run("failures keyed by json name", func(t *testing.T) {
		over := 101
		s := sample{
			Email:    "nope",
			Progress: &over,
			Date:     "20-01-2024",
			Decision: "maybe",
			Children: []child{{Name: "   "}},
		}
		err := Struct(s)
		require.Error(t, err)

		var errs ValidationErrors
		require.True(t, errors.As(err, &errs))
		m := errs.ToMap()
		assert.Contains(t, m, "email")
		assert.Equal(t, "progress must be at most 100", m["progress"])
		assert.Contains(t, m, "start_date")
		assert.Contains(t, m, "decision")
		assert.Equal(t, "employee_name is required", m["children[0].employee_name"])
	})

	t.Run("nil pointer is required", func(t *testing.T) {
		s := sample{Email: "a@b.co", Date: "2024-01-20", Decision: "reject", Children: []child{{Name: "x"}}}
		var errs ValidationErrors
		require.True(t, errors.As(Struct(s), &errs))
		assert.Equal(t, "progress is required", errs.ToMap()["progress"])
	})

	t.Run("empty children", func(t *testing.T) {
		s := sample{Email: "a@b.co", Progress: &progress, Date: "2024-01-20", Decision: "reject", Children: []child{}}
		var errs ValidationErrors
		require.True(t, errors.As(Struct(s), &errs))
		assert.Equal(t, "children must contain at least 1 item(s)", errs.ToMap()["children"])
	})
}
