package tui

import (
	"testing"
)

func TestInCI(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    bool
	}{
		{
			name: "GitHub Actions",
			envVars: map[string]string{
				"GITHUB_ACTIONS": "true",
			},
			want: true,
		},
		{
			name: "GitLab CI",
			envVars: map[string]string{
				"GITLAB_CI": "true",
			},
			want: true,
		},
		{
			name: "Jenkins",
			envVars: map[string]string{
				"JENKINS_URL": "http://jenkins.local",
			},
			want: true,
		},
		{
			name: "Generic CI",
			envVars: map[string]string{
				"CI": "true",
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range ciEnvVars {
				t.Setenv(key, "")
			}
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			if got := InCI(); got != tt.want {
				t.Errorf("InCI() = %v, want %v (with env: %v)", got, tt.want, tt.envVars)
			}
			if ShouldPrompt() {
				t.Errorf("ShouldPrompt() should be false in CI")
			}
		})
	}
}

func TestNotInCI(t *testing.T) {
	for _, key := range ciEnvVars {
		t.Setenv(key, "")
	}

	if InCI() {
		t.Errorf("InCI() = true with no CI variables set")
	}
}
