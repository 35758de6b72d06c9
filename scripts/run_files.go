package scripts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/reusee/tce/logs"
	"github.com/reusee/tce/syncs"
)

// RunFiles executes script files concurrently, at most jobs at a time.
// Each script gets its own exception thread.
type RunFiles func(ctx context.Context, paths []string, jobs int) error

func (Module) RunFiles(
	exec Exec,
	logger logs.Logger,
) RunFiles {
	return func(ctx context.Context, paths []string, jobs int) error {
		sem := syncs.NewSemaphore(jobs)
		errs := make([]error, len(paths))
		var wg sync.WaitGroup
		for i, path := range paths {
			sem.Acquire()
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release()
				if _, err := exec(ctx, path, nil, nil); err != nil {
					errs[i] = fmt.Errorf("%s: %w", path, err)
					return
				}
				logger.DebugContext(ctx, "script done",
					"path", path,
				)
			}()
		}
		wg.Wait()
		return errors.Join(errs...)
	}
}
