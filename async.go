package vireo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fanOut runs n child resolutions concurrently, one goroutine each, and
// returns their results indexed by child position. Siblings always run to
// completion even when some fail (the exhaustive policy is the same as the
// synchronous path); only parent-context cancellation stops the group. The
// caller merges slots in index order, so output never depends on completion
// timing.
func fanOut(ctx context.Context, n int, run func(ctx context.Context, i int) resolution) ([]resolution, error) {
	slots := make([]resolution, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			slots[i] = run(gctx, i)
			return nil
		})
	}
	// Workers never return errors, so Wait only joins.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, r := range slots {
		if r.fatal != nil {
			return nil, r.fatal
		}
	}
	return slots, nil
}
