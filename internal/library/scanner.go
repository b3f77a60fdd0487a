package library

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

const numWorkers = 8

// Reader loads one record by path.
type Reader func(path string) (record.Record, error)

// ScanResult holds the records read by Scan, in file order, and the files
// that could not be read.
type ScanResult struct {
	Records []record.Record
	Failed  map[string]error
}

// Scan reads files in parallel with read.
func Scan(files []string, read Reader) ScanResult {
	type result struct {
		idx int
		rec record.Record
		err error
	}

	workCh := make(chan int, len(files))
	resultCh := make(chan result, len(files))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for i := range workCh {
				rec, err := read(files[i])
				resultCh <- result{idx: i, rec: rec, err: err}
			}
		})
	}

	for i := range files {
		workCh <- i
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	recs := make([]record.Record, len(files))
	ok := make([]bool, len(files))
	out := ScanResult{Failed: make(map[string]error)}
	for r := range resultCh {
		if r.err != nil {
			out.Failed[files[r.idx]] = r.err
			log.Warn().Err(r.err).Str("path", files[r.idx]).Msg("cannot read tags")
			continue
		}
		recs[r.idx] = r.rec
		ok[r.idx] = true
	}
	for i, rec := range recs {
		if ok[i] {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}
