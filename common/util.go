package common

import (
	"errors"
	"sync"
)

// RunParallel runs funcs concurrently and joins their errors. It returns nil
// when every function succeeded.
func RunParallel(funcs ...func() error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(funcs))

	for i, fn := range funcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = fn()
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}
