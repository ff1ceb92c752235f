package utils

import (
	"context"
	"time"
)

// DefaultQueryTimeout covers ordinary CRUD queries.
const DefaultQueryTimeout = 30 * time.Second

// FastQueryTimeout is for single-row lookups.
const FastQueryTimeout = 10 * time.Second

// SlowQueryTimeout is for heavy reads such as the rollup snapshot, which
// fans out over parts and logs of every active project.
const SlowQueryTimeout = 60 * time.Second

// GetQueryContext returns a context with the given timeout, derived from the
// parent when one is provided.
func GetQueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

func GetDefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, DefaultQueryTimeout)
}

func GetFastQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, FastQueryTimeout)
}

func GetSlowQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, SlowQueryTimeout)
}
