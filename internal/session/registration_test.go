package session

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

func TestRegistrationFormEncoding(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	form := RegistrationForm{
		Role:        platform.RoleAlumni,
		RollNumber:  "19CS042",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: time.Date(2000, 1, 2, 0, 0, 0, 0, ist),
		City:        "Pune",
		PhoneNumber: "9876543210",
		Email:       "ada@x.com",
		Courses:     []string{"btech_cse", "mba"},
		Gender:      GenderFemale,
		Password:    "Passw0rd1",
		Certificate: &Attachment{
			Filename:    "degree.pdf",
			ContentType: "application/pdf",
			Content:     strings.NewReader("%PDF"),
		},
	}

	encoded, err := form.Form()
	require.NoError(t, err)

	want := map[string]string{
		"role":        "alumni",
		"rollNumber":  "19CS042",
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"dob":         "2000-01-01T18:30:00.000Z",
		"city":        "Pune",
		"phoneNumber": "9876543210",
		"email":       "ada@x.com",
		"courses":     `["btech_cse","mba"]`,
		"gender":      "female",
		"password":    "Passw0rd1",
	}
	for name, value := range want {
		got, ok := encoded.Value(name)
		assert.True(t, ok, name)
		assert.Equal(t, value, got, name)
	}

	_, ok := encoded.Value("confirmPassword")
	assert.False(t, ok)

	files := encoded.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "certificate", files[0].Field)
	assert.Equal(t, "degree.pdf", files[0].Filename)
	data, _ := io.ReadAll(files[0].Content)
	assert.Equal(t, "%PDF", string(data))
}

func TestRegistrationFormOmitsEmptyFields(t *testing.T) {
	encoded, err := RegistrationForm{
		Role:     platform.RoleStudent,
		Email:    "s@x.com",
		Password: "Passw0rd1",
	}.Form()
	require.NoError(t, err)

	assert.Equal(t, []string{"role", "email", "password"}, encoded.Names())
	assert.Empty(t, encoded.Files())
}

func TestRegistrationFormEmptyCourses(t *testing.T) {
	encoded, err := RegistrationForm{Courses: []string{}}.Form()
	require.NoError(t, err)

	courses, ok := encoded.Value("courses")
	assert.True(t, ok)
	assert.Equal(t, "[]", courses)
}

func TestCourseName(t *testing.T) {
	assert.Equal(t, "MBA", CourseName("mba"))
	assert.Equal(t, "B.Tech (Computer Science)", CourseName("btech_cse"))
	assert.Equal(t, "phd_physics", CourseName("phd_physics"))
}
