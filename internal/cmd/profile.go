package cmd

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/alumni/internal/session"
	"github.com/felixgeelhaar/alumni/internal/ux"
)

// Profile is the signed-in user as printed by whoami and dashboard
type Profile struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	Role      string     `json:"role" yaml:"role"`
	Picture   string     `json:"profilePicture,omitempty" yaml:"profile_picture,omitempty"`
	Token     string     `json:"tokenFingerprint,omitempty" yaml:"token_fingerprint,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`
}

func newProfile(s session.Session) Profile {
	return Profile{
		ID:        s.User.ID,
		Name:      s.User.FullName(),
		Email:     s.User.Email,
		Role:      string(s.User.Role),
		Picture:   s.User.ProfilePicture,
		Token:     session.Fingerprint(s.Token),
		ExpiresAt: tokenExpiry(s.Token),
	}
}

// Fields implements ux.Fielder
func (p Profile) Fields() []ux.Field {
	fields := []ux.Field{
		{Label: "Name", Value: p.Name},
		{Label: "Email", Value: p.Email},
		{Label: "Role", Value: p.Role},
		{Label: "User ID", Value: p.ID},
		{Label: "Picture", Value: p.Picture},
		{Label: "Token", Value: p.Token},
	}
	if p.ExpiresAt != nil {
		fields = append(fields, ux.Field{Label: "Expires", Value: p.ExpiresAt.Local().Format(time.RFC1123)})
	}
	return fields
}

// tokenExpiry reads the exp claim without verifying the signature. The portal
// is the only judge of validity; this is informational.
func tokenExpiry(token string) *time.Time {
	if token == "" {
		return nil
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	t := claims.ExpiresAt.Time
	return &t
}
