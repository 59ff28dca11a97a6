package provider

import (
	"context"
	"sync"

	"github.com/seolab/kwscout/internal/domain/model"
)

// fetchEach runs fetch for every keyword through a bounded pool of workers
// reading from a shared index queue. Results keep the input keyword order so
// provider output stays deterministic regardless of worker interleaving.
// Each fetch call is expected to gate itself on the provider's rate limiter.
func fetchEach(ctx context.Context, keywords []string, workers int, fetch func(ctx context.Context, keyword string) []model.Observation) []model.Observation {
	if len(keywords) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(keywords) {
		workers = len(keywords)
	}

	results := make([][]model.Observation, len(keywords))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fetch(ctx, keywords[i])
			}
		}()
	}

feed:
	for i := range keywords {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	var out []model.Observation
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
