package verifier

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RecordStore interface {
		Get(ctx context.Context, id string) (model.Record, error)
	}
	Ledger interface {
		ReadCurrent(ctx context.Context, recordID string) (model.LedgerEntry, error)
	}
	Metrics interface {
		ObserveVerify(err error, verified bool, started time.Time)
		ObserveBatch(size int)
	}
)
