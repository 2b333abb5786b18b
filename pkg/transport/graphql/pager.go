package graphql

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/saturnines/project-gateway/pkg/errors"
)

// Pager drives cursor paging over a GraphQL connection.
type Pager struct {
	// Immutable configuration
	builder     *Builder
	cursorKey   string
	nextPath    []string
	hasNextPath []string

	// Mutable state (protected by mutex)
	mu      sync.RWMutex
	cursor  interface{}
	hasNext bool
	first   bool
}

// NewPager returns a Pager feeding the value at nextPath back as the cursorKey
// variable until the value at hasNextPath is false.
// Does NOT execute any requests during creation.
func NewPager(builder *Builder, cursorKey string, nextPath, hasNextPath []string) (*Pager, error) {
	if builder == nil {
		return nil, errors.WrapError(fmt.Errorf("builder cannot be nil"), errors.ErrPagination, "new pager")
	}
	if cursorKey == "" {
		return nil, errors.WrapError(fmt.Errorf("cursorKey cannot be empty"), errors.ErrPagination, "new pager")
	}
	if len(nextPath) == 0 {
		return nil, errors.WrapError(fmt.Errorf("nextPath cannot be empty"), errors.ErrPagination, "new pager")
	}
	if len(hasNextPath) == 0 {
		return nil, errors.WrapError(fmt.Errorf("hasNextPath cannot be empty"), errors.ErrPagination, "new pager")
	}

	return &Pager{
		builder:     builder,
		cursorKey:   cursorKey,
		nextPath:    nextPath,
		hasNextPath: hasNextPath,
		cursor:      builder.Variables[cursorKey],
		hasNext:     true,
		first:       true,
	}, nil
}

// NextBuilder returns a Builder for the next page or nil when done.
// The pager's own builder is never modified.
func (p *Pager) NextBuilder() *Builder {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.first && !p.hasNext {
		return nil
	}

	next := p.builder.clone()
	next.Variables[p.cursorKey] = p.cursor
	return next
}

// UpdateState reads the cursor and has-next flag from a page's data member.
func (p *Pager) UpdateState(data json.RawMessage) error {
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return errors.WrapError(err, errors.ErrPagination, "failed to decode GraphQL page")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.first = false

	hasNext, _ := traverse(decoded, p.hasNextPath...).(bool)
	endCursor, _ := traverse(decoded, p.nextPath...).(string)

	// a page claiming more data without a cursor would loop forever
	if endCursor == "" {
		hasNext = false
	}

	p.hasNext = hasNext
	if hasNext {
		p.cursor = endCursor
	}
	return nil
}

// HasMore reports whether NextBuilder will return another page.
func (p *Pager) HasMore() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.first || p.hasNext
}

// traverse digs into nested maps via a path of keys.
func traverse(m map[string]interface{}, path ...string) interface{} {
	cur := interface{}(m)
	for _, key := range path {
		if mp, ok := cur.(map[string]interface{}); ok {
			cur = mp[key]
		} else {
			return nil
		}
	}
	return cur
}
