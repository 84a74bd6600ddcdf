// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Batch errors.
var (
	ErrBatchPool = errors.New("failed to schedule tokenization")
)

// BatchError locates the failing source of a TokenizeAll call.
type BatchError struct {
	Index int
	Err   error
}

// Error is the error interface implementation for BatchError.
func (e *BatchError) Error() string { return fmt.Sprintf("source %d: %v", e.Index, e.Err) }

// Unwrap obtains the source's error.
func (e *BatchError) Unwrap() error { return e.Err }

// TokenizeAll lexes every source on a bounded goroutine pool.
//
// Streams are returned in the order of sources. On failure a *BatchError holding the
// lowest failing index is returned.
func (l *Lexer) TokenizeAll(ctx context.Context, sources []string) (streams []TokenStream, err error) {
	if len(sources) < 1 {
		return
	}

	pool, err := ants.NewPool(l.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBatchPool, err)
	}
	defer pool.Release()

	streams = make([]TokenStream, len(sources))
	errs := make([]error, len(sources))

	wg := new(sync.WaitGroup)
	for index := range sources {
		select {
		case <-ctx.Done():
			errs[index] = ctx.Err()
			continue
		default:
		}

		index := index
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			streams[index], errs[index] = l.Tokenize(sources[index])
		}); submitErr != nil {
			wg.Done()
			errs[index] = fmt.Errorf("%w: %v", ErrBatchPool, submitErr)
		}
	}
	wg.Wait()

	for index := range errs {
		if errs[index] != nil {
			return nil, &BatchError{Index: index, Err: errs[index]}
		}
	}

	if l.debug {
		l.logger.Debugf("lexer batch: %d sources", len(sources))
	}

	return
}
