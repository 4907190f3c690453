package hardcover

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced by the engine.
var (
	// ErrUnauthenticated is returned before any request when no API key is
	// configured.
	ErrUnauthenticated = errors.New("no Hardcover API key configured")
	// ErrNoBooksFound is returned by the book entity listing when a forced
	// refresh still yields nothing.
	ErrNoBooksFound = errors.New("no currently reading books found")
	// ErrNoReleasesFound is returned by the release entity listing when a
	// forced refresh still yields nothing.
	ErrNoReleasesFound = errors.New("no upcoming releases found")
)

// GraphQLError represents a non-empty errors array in an otherwise
// well-formed GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// MissingFieldError reports that none of a field's accepted key spellings
// were present in a payload.
type MissingFieldError struct {
	Keys []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field, tried keys [%s]", strings.Join(e.Keys, ", "))
}
