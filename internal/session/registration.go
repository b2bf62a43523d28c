package session

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

// Gender values accepted by the portal
type Gender string

// Genders
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Attachment is an uploaded file, such as an alumni degree certificate
type Attachment struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// RegistrationForm is the data submitted when creating an account.
// Empty optional fields are not sent.
type RegistrationForm struct {
	Role        platform.Role
	RollNumber  string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	City        string
	PhoneNumber string
	Email       string
	Courses     []string
	Gender      Gender
	Password    string

	// Certificate is optional and only meaningful for alumni
	Certificate *Attachment
}

// isoMillis matches JavaScript's Date.toISOString, which the portal backend parses
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Form encodes the registration as a multipart form: the date of birth as an
// ISO-8601 UTC timestamp, courses as a JSON array string, the certificate as a file part.
func (f RegistrationForm) Form() (*platform.Form, error) {
	form := platform.NewForm()

	set := func(name, value string) {
		if value != "" {
			form.Set(name, value)
		}
	}

	set("role", string(f.Role))
	set("rollNumber", f.RollNumber)
	set("firstName", f.FirstName)
	set("lastName", f.LastName)
	if !f.DateOfBirth.IsZero() {
		form.Set("dob", f.DateOfBirth.UTC().Format(isoMillis))
	}
	set("city", f.City)
	set("phoneNumber", f.PhoneNumber)
	set("email", f.Email)
	if f.Courses != nil {
		courses, err := json.Marshal(f.Courses)
		if err != nil {
			return nil, fmt.Errorf("failed to encode courses: %w", err)
		}
		form.Set("courses", string(courses))
	}
	set("gender", string(f.Gender))
	set("password", f.Password)

	if f.Certificate != nil && f.Certificate.Content != nil {
		form.AddFile(platform.FormFile{
			Field:       "certificate",
			Filename:    f.Certificate.Filename,
			ContentType: f.Certificate.ContentType,
			Content:     f.Certificate.Content,
		})
	}

	return form, nil
}

// Course is a programme a student or alumnus can be enrolled in
type Course struct {
	ID   string
	Name string
}

// AvailableCourses lists the courses offered at registration
var AvailableCourses = []Course{
	{ID: "btech_cse", Name: "B.Tech (Computer Science)"},
	{ID: "btech_ece", Name: "B.Tech (Electronics & Communication)"},
	{ID: "btech_me", Name: "B.Tech (Mechanical Engineering)"},
	{ID: "btech_ce", Name: "B.Tech (Civil Engineering)"},
	{ID: "bba", Name: "BBA"},
	{ID: "mba", Name: "MBA"},
	{ID: "mtech_cse", Name: "M.Tech (Computer Science)"},
	{ID: "mtech_ece", Name: "M.Tech (Electronics & Communication)"},
}

// CourseName returns the display name for a course id, or the id itself
func CourseName(id string) string {
	for _, c := range AvailableCourses {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
