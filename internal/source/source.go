// Package source defines the contract for enrichment collaborators:
// external HTTP services that suggest candidate technology records.
// Adapters live in subpackages, one per service.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/techtrack/internal/model"
)

// AuthError indicates that authentication has failed or expired for a
// source. It is returned by source clients when a 401 response is
// received.
type AuthError struct {
	Source  string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Source, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// FetchOptions controls pagination for search operations.
type FetchOptions struct {
	Page     int
	PageSize int
}

// SearchResult holds a page of candidate technologies returned from a
// source query.
type SearchResult struct {
	Items   []model.Technology
	Total   int
	HasMore bool
}

// Searcher is implemented by sources that can turn a free-text query
// into candidate technology records ready for the store.
type Searcher interface {
	// Name returns the source identifier (e.g. "github").
	Name() string

	// Search finds candidate technologies matching the query.
	Search(ctx context.Context, query string, opts FetchOptions) (*SearchResult, error)
}
