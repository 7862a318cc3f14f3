package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dishfinder/directory"
	"dishfinder/models"
)

// Source is where the directory comes from: the upstream HTTP API or
// PostgreSQL. Implementations log their own failures and degrade to an empty
// directory or an absent restaurant.
type Source interface {
	FetchDirectory(ctx context.Context) (models.Directory, error)
	FetchRestaurant(ctx context.Context, id string) (models.Restaurant, bool)
}

// LoadDirectory fetches the directory once and installs it in idx. It runs
// before the server accepts traffic; a failed fetch leaves idx empty and
// marked as degraded, and the source's error is returned for the caller to
// report.
func LoadDirectory(ctx context.Context, src Source, idx *directory.Index, timeout time.Duration, log *zap.Logger) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t0 := time.Now()
	dir, err := src.FetchDirectory(ctx)
	idx.Replace(dir, err)

	if err != nil {
		return err
	}
	log.Info("Directory loaded",
		zap.Int("counties", len(dir)),
		zap.Int("restaurants", dir.Len()),
		zap.Duration("took", time.Since(t0)))
	return nil
}
