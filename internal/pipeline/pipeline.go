package pipeline

import (
	"runtime"
	"sync"
)

// Scan is the per-document work function: ingest, score, report.
type Scan func(path string) error

// ScanFiles runs fn over every path with a bounded worker pool. The scoring
// core itself is synchronous; concurrency exists only across independent
// documents. Returned errors are unordered.
func ScanFiles(paths []string, workers int, fn Scan) []error {
	if len(paths) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	jobs := make(chan string)
	errs := make(chan error, len(paths))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := fn(path); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}
