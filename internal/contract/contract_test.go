package contract

import (
	"context"
	"net/http"
	"testing"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

func TestEmbeddedContractCoversClient(t *testing.T) {
	c, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if findings := c.Check(platform.Endpoints()); len(findings) != 0 {
		t.Errorf("expected client endpoints to be covered, got %v", findings)
	}
}

func TestCheckReportsMissing(t *testing.T) {
	c, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	findings := c.Check([]platform.Endpoint{
		{Method: http.MethodDelete, Path: platform.PathCurrentUser},
		{Method: http.MethodGet, Path: "/events"},
	})

	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(findings), findings)
	}
	if findings[0].Code != "MISSING_API_METHOD" {
		t.Errorf("findings[0].Code = %s, want MISSING_API_METHOD", findings[0].Code)
	}
	if findings[1].Code != "MISSING_API_PATH" {
		t.Errorf("findings[1].Code = %s, want MISSING_API_PATH", findings[1].Code)
	}
}

func TestStatusesMatchClientHandling(t *testing.T) {
	c, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		endpoint platform.Endpoint
		want     []string
	}{
		{platform.Endpoint{Method: http.MethodPost, Path: platform.PathLogin}, []string{"200", "401", "429"}},
		{platform.Endpoint{Method: http.MethodPost, Path: platform.PathRegister}, []string{"201", "400", "409"}},
		{platform.Endpoint{Method: http.MethodGet, Path: platform.PathCurrentUser}, []string{"200", "401"}},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint.Path, func(t *testing.T) {
			got := c.Statuses(tt.endpoint)
			if len(got) != len(tt.want) {
				t.Fatalf("Statuses() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Statuses()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseRejectsInvalidDocument(t *testing.T) {
	_, err := Parse(context.Background(), []byte("openapi: 3.0.3\ninfo: {}\npaths: {}\n"))
	if err == nil {
		t.Fatal("expected an error for a document without title and version")
	}
}
