// SPDX-License-Identifier: MIT
package arraytree

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Batch building errors.
var (
	ErrEmptyBatch = errors.New("empty batch")
	ErrBatchPool  = errors.New("failed to run batch pool")
)

// BuildAll builds a forest per record set on a worker pool sized by [WithPoolSize].
//
// Forests are returned in the order of their sets; a failed set has a nil forest & its error,
// prefixed with the set's index, is joined into err. Sets must not share records when
// [WithAssign] is enabled.
func BuildAll(ctx context.Context, sets [][]Item, options ...Option) (forests [][]TreeItem, err error) {
	if len(sets) < 1 {
		return nil, ErrEmptyBatch
	}

	cfg := NewConfig(options...)
	cfg.Validate()

	forests = make([][]TreeItem, len(sets))
	errs := make([]error, len(sets))

	wg := new(sync.WaitGroup)
	pool, err := ants.NewPoolWithFunc(cfg.PoolSize, func(arg interface{}) {
		defer wg.Done()

		index := arg.(int)
		if forests[index], errs[index] = cfg.Build(sets[index]); errs[index] != nil {
			errs[index] = fmt.Errorf("set %d: %w", index, errs[index])
		}
	}, ants.WithLogger(cfg.Logger))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBatchPool, err)
	}
	defer pool.Release()

	for index := range sets {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
			wg.Add(1)
			if err = pool.Invoke(index); err != nil {
				wg.Done()
				err = fmt.Errorf("%w: %w", ErrBatchPool, err)
			}
		}
		if err != nil {
			break
		}
	}
	wg.Wait()

	if err != nil {
		return nil, err
	}

	if cfg.Debug {
		cfg.Logger.Debugf("built %d forests on %d workers", len(sets), cfg.PoolSize)
	}

	return forests, errors.Join(errs...)
}
