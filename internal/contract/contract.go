// Package contract holds the OpenAPI description of the portal API and checks the
// client's endpoint set against it.
package contract

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

//go:embed portal.openapi.yaml
var portalSpec []byte

// Finding is a mismatch between the client and the contract
type Finding struct {
	Code     string
	Message  string
	Endpoint platform.Endpoint
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Contract is a loaded and validated OpenAPI document
type Contract struct {
	doc *openapi3.T
}

// Load parses and validates the embedded portal contract
func Load(ctx context.Context) (*Contract, error) {
	return Parse(ctx, portalSpec)
}

// Parse loads an OpenAPI document from YAML or JSON bytes
func Parse(ctx context.Context, data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	return &Contract{doc: doc}, nil
}

// Title returns the API title and version
func (c *Contract) Title() string {
	return fmt.Sprintf("%s %s", c.doc.Info.Title, c.doc.Info.Version)
}

// Check reports every endpoint missing from the contract
func (c *Contract) Check(endpoints []platform.Endpoint) []Finding {
	var findings []Finding

	for _, ep := range endpoints {
		item := c.doc.Paths.Find(ep.Path)
		if item == nil {
			findings = append(findings, Finding{
				Code:     "MISSING_API_PATH",
				Message:  fmt.Sprintf("API path not found in contract: %s %s", ep.Method, ep.Path),
				Endpoint: ep,
			})
			continue
		}

		if item.GetOperation(strings.ToUpper(ep.Method)) == nil {
			findings = append(findings, Finding{
				Code:     "MISSING_API_METHOD",
				Message:  fmt.Sprintf("API method not found in contract: %s %s", ep.Method, ep.Path),
				Endpoint: ep,
			})
		}
	}

	return findings
}

// Statuses returns the documented response codes of an operation, sorted
func (c *Contract) Statuses(ep platform.Endpoint) []string {
	item := c.doc.Paths.Find(ep.Path)
	if item == nil {
		return nil
	}
	op := item.GetOperation(strings.ToUpper(ep.Method))
	if op == nil || op.Responses == nil {
		return nil
	}

	var codes []string
	for code := range op.Responses.Map() {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
