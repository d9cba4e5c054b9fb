package postgres

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Invalidator drops cached verification results for a record.
	Invalidator interface {
		Invalidate(ctx context.Context, recordID string)
	}
)
