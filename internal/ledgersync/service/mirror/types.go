package mirror

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeightRange interface {
		Resolve(ctx context.Context) (from, to uint64, err error)
	}
	BlockScanner interface {
		Scan(ctx context.Context, heights []uint64) error
		SetCancelWriter(cancel func())
	}
	EntryWriter interface {
		Start(ctx context.Context)
		Stop()
		Err() error
		WriteEntries(ctx context.Context, entries []model.LedgerEntry) error
	}

	RebuilderMetrics interface {
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, started time.Time)
		ObserveEntries(count int)
	}

	HistorySource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchEntries(ctx context.Context, height uint64) ([]model.LedgerEntry, error)
	}
	ClickhouseRepository interface {
		InsertLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error
		MaxBlockHeight(ctx context.Context, network model.Network) (uint64, error)
	}
)
