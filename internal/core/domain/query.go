package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultResultsSize is the page size for search and section queries.
const DefaultResultsSize = 10

// NoLimit asks the index for every matching item.
const NoLimit = -1

// Channel is a named query lane with its own dedup key, cursor and
// cancellation token.
type Channel int

// Query channels.
const (
	// ChannelSearch carries free-text search queries.
	ChannelSearch Channel = iota
	// ChannelSection carries set listing queries.
	ChannelSection
)

// Channels lists every channel in a stable order.
var Channels = []Channel{ChannelSearch, ChannelSection}

// String returns the string representation of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelSearch:
		return "search"
	case ChannelSection:
		return "section"
	default:
		return "unknown"
	}
}

// Cursor is an opaque continuation token returned by the index.
// The empty cursor means there are no more results.
type Cursor string

// IsZero reports whether the cursor is empty.
func (c Cursor) IsZero() bool {
	return c == ""
}

// OffsetCursor encodes a result offset as a cursor.
// Both bundled index backends page by offset.
func OffsetCursor(offset int) Cursor {
	return Cursor(strconv.Itoa(offset))
}

// Offset decodes an offset cursor. The zero cursor is offset 0.
func (c Cursor) Offset() (int, error) {
	if c.IsZero() {
		return 0, nil
	}
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("cursor %q: %w", string(c), ErrInvalidInput)
	}
	return n, nil
}

// QuerySpec describes one content index query.
// Text and Tags are mutually exclusive.
type QuerySpec struct {
	// Text is the free-text query.
	Text string

	// Tags filters to items carrying any of these tags.
	Tags []string

	// Limit is the maximum number of items; NoLimit returns all.
	Limit int

	// Cursor continues a previous query when set.
	Cursor Cursor
}

// Validate checks the text/tags exclusivity rule.
func (q QuerySpec) Validate() error {
	if q.Text != "" && len(q.Tags) > 0 {
		return ErrInvalidInput
	}
	return nil
}

// QueryResult is one page of query results.
type QueryResult struct {
	// Items are the matched content items in index order.
	Items []*ContentRef

	// Next continues the query; empty at the end of results.
	Next Cursor
}

// SanitizeQuery collapses runs of whitespace and trims the result.
func SanitizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
