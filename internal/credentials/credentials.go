package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrCredentialNotFound is returned when every provider in the chain has been
// exhausted. Startup treats it as fatal: there is no way to reach the store.
var ErrCredentialNotFound = errors.New("no service-account credential found")

// ServiceAccount is the parsed service-account key used to authenticate
// against the hosted document store.
type ServiceAccount struct {
	ProjectID string `json:"project_id"`
	Database  string `json:"database"`
	URI       string `json:"uri"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
}

// Provider resolves a service-account key from one location.
type Provider interface {
	// Resolve returns the credential, or an error when this provider cannot
	// supply one (the chain then moves on to the next provider).
	Resolve(ctx context.Context) (*ServiceAccount, error)
	Name() string
}

// SecretProvider parses an inline JSON key held in a configuration-managed
// secret (e.g. an env var injected by the deployment platform).
type SecretProvider struct {
	JSON string
}

func (p SecretProvider) Name() string { return "secret" }

func (p SecretProvider) Resolve(_ context.Context) (*ServiceAccount, error) {
	if p.JSON == "" {
		return nil, errors.New("secret not configured")
	}
	var sa ServiceAccount
	if err := json.Unmarshal([]byte(p.JSON), &sa); err != nil {
		return nil, fmt.Errorf("parse secret key: %w", err)
	}
	if sa.URI == "" {
		return nil, errors.New("secret key has no uri")
	}
	return &sa, nil
}

// FileProvider scans a fixed list of directories for key files matching a
// glob pattern and parses the first match. Matches within a directory are
// sorted so the pick is deterministic.
type FileProvider struct {
	Dirs    []string
	Pattern string
}

func (p FileProvider) Name() string { return "file" }

func (p FileProvider) Resolve(_ context.Context) (*ServiceAccount, error) {
	for _, dir := range p.Dirs {
		matches, err := filepath.Glob(filepath.Join(dir, p.Pattern))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		if len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		raw, err := os.ReadFile(matches[0])
		if err != nil {
			return nil, fmt.Errorf("read key file %s: %w", matches[0], err)
		}
		var sa ServiceAccount
		if err := json.Unmarshal(raw, &sa); err != nil {
			return nil, fmt.Errorf("parse key file %s: %w", matches[0], err)
		}
		if sa.URI == "" {
			return nil, fmt.Errorf("key file %s has no uri", matches[0])
		}
		return &sa, nil
	}
	return nil, errors.New("no key file matched")
}

// Chain tries each provider in order; the first success wins.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Resolve walks the chain. When every provider fails the returned error wraps
// ErrCredentialNotFound together with the last provider failure.
func (c *Chain) Resolve(ctx context.Context) (*ServiceAccount, error) {
	var lastErr error
	for _, p := range c.providers {
		sa, err := p.Resolve(ctx)
		if err == nil {
			return sa, nil
		}
		lastErr = fmt.Errorf("%s provider: %w", p.Name(), err)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentialNotFound, lastErr)
	}
	return nil, ErrCredentialNotFound
}
