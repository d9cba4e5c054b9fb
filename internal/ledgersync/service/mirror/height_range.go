package mirror

import (
	"context"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

// heightRange resolves the inclusive block range to scan. An empty range is
// reported as from > to.
type heightRange struct {
	source     HistorySource
	repository ClickhouseRepository
	network    model.Network
	from       uint64
	to         uint64
	depth      uint64
	resume     bool
}

func (r *heightRange) Resolve(ctx context.Context) (uint64, uint64, error) {
	from := r.from
	if r.resume {
		mirrored, err := r.repository.MaxBlockHeight(ctx, r.network)
		if err != nil {
			return 0, 0, err
		}
		from = max(from, mirrored)
	}

	to := r.to
	if to == 0 {
		tip, err := r.source.LatestHeight(ctx)
		if err != nil {
			return 0, 0, err
		}
		if tip+1 < r.depth {
			return 1, 0, nil
		}
		to = tip + 1 - r.depth
	}
	return from, to, nil
}
