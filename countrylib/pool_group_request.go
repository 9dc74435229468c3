package countrylib

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type resolveIPRequest struct {
	ctx     context.Context
	index   int
	results []ResolveResult
	wg      *sync.WaitGroup
}

type poolGroupRequest struct {
	ctx     context.Context
	cancel  context.CancelFunc
	results []ResolveResult
	wg      *sync.WaitGroup
	pool    *ants.PoolWithFunc
}

// Do schedules a resolving of results[index].IP. Each task writes only
// into its own element of results.
func (p *poolGroupRequest) Do(ctx context.Context, index int) error {
	select {
	case <-ctx.Done():
		return ErrContextIsClosed
	case <-p.ctx.Done():
		return ErrContextIsClosed
	default:
	}

	p.wg.Add(1)

	req := &resolveIPRequest{
		ctx:     p.ctx,
		index:   index,
		results: p.results,
		wg:      p.wg,
	}

	if err := p.pool.Invoke(req); err != nil {
		p.wg.Done()
		p.cancel()

		return fmt.Errorf("cannot schedule a task: %w", err)
	}

	return nil
}

func newPoolGroupRequest(ctx context.Context,
	results []ResolveResult,
	wg *sync.WaitGroup,
	pool *ants.PoolWithFunc) *poolGroupRequest {
	ctx, cancel := context.WithCancel(ctx)

	return &poolGroupRequest{
		ctx:     ctx,
		cancel:  cancel,
		wg:      wg,
		results: results,
		pool:    pool,
	}
}
