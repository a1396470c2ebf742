package resolver

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
)

// DefaultMaxRetries is the number of retry rounds dispatched after the
// initial one before still-failing addresses are given up on.
const DefaultMaxRetries = 10

// Resolver turns an ordered sequence of address strings into a positionally
// aligned sequence of coordinates, using concurrent dispatch with bounded
// retry. Failed lookups are tracked by original index and only the failed
// subset is retried in successive rounds; entries that never resolve stay nil
// in the output.
type Resolver struct {
	log          *slog.Logger       // Logger for logging resolver activities
	provider     geocoding.Provider // Geocoding provider for external geocoding services
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking resolver performance
	maxRetries   int                // Retry ceiling: rounds after the initial dispatch
}

// lookupJob pairs an address with its position in the original input sequence.
// The index is assigned once per FetchCoordinates call and never renumbered,
// so results from any retry round splice back to the right slot.
type lookupJob struct {
	index   int
	address string
}

// lookupOutcome is the private result slot a worker fills for one job.
// A nil coords means the lookup failed and the index is eligible for retry.
type lookupOutcome struct {
	index   int
	address string
	coords  *models.Coordinates
}

// batchResult partitions one round's outcomes by original index.
type batchResult struct {
	outcomes  []lookupOutcome
	succeeded map[int]*models.Coordinates
	failed    map[int]string
}

// NewResolver creates a new instance of Resolver. It takes a logger, a
// geocoding provider, the provider name for metrics labeling, metrics for
// monitoring, and the retry ceiling. A negative maxRetries selects
// DefaultMaxRetries; zero disables retries entirely.
func NewResolver(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	maxRetries int,
) *Resolver {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	return &Resolver{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		maxRetries:   maxRetries,
	}
}

// FetchCoordinates resolves every address concurrently and returns a slice of
// the same length and order as the input, with nil entries for addresses that
// remained unresolved after the retry budget. Remote failures never surface as
// errors; a partially populated result is a valid terminal state.
//
// The concurrency argument bounds the worker pool for every round; values
// below 1 or above the host parallelism are clamped.
func (r *Resolver) FetchCoordinates(
	ctx context.Context,
	addresses []string,
	concurrency int,
) []*models.Coordinates {
	// The output is allocated once and spliced into by original index,
	// only between rounds, never by workers.
	results := make([]*models.Coordinates, len(addresses))
	if len(addresses) == 0 {
		return results
	}

	workers := clampWorkers(concurrency, len(addresses))

	pending := make(map[int]string, len(addresses))
	for index, address := range addresses {
		pending[index] = address
	}

	r.log.InfoContext(ctx, "Fetching coordinates", "addresses", len(addresses), "workers", workers)

	batch := r.dispatchBatch(ctx, pending, workers)
	for index, coords := range batch.succeeded {
		results[index] = coords
	}
	pending = batch.failed

	for retries := 0; len(pending) > 0 && retries < r.maxRetries; retries++ {
		r.log.InfoContext(ctx, "Retrying failed lookups", "round", retries+1, "remaining", len(pending))
		r.metrics.RetryRounds.Inc()

		batch = r.dispatchBatch(ctx, pending, workers)
		for index, coords := range batch.succeeded {
			results[index] = coords
		}
		pending = batch.failed
	}

	if len(pending) > 0 {
		r.log.WarnContext(ctx, "Retry budget exhausted, some addresses stay unresolved",
			"unresolved", len(pending), "total", len(addresses))
	}

	return results
}

// dispatchBatch runs one round: it fires resolveOne concurrently for every
// pending (index, address) pair and partitions the outcomes once the pool has
// fully drained. A failure in one lookup never aborts its siblings; the round
// always completes every dispatched call.
func (r *Resolver) dispatchBatch(ctx context.Context, pending map[int]string, workers int) batchResult {
	jobs := make(chan lookupJob, len(pending))
	outcomes := make(chan lookupOutcome, len(pending))

	var wgr sync.WaitGroup
	for i := 1; i <= workers; i++ {
		wgr.Add(1)
		go r.worker(ctx, i, &wgr, jobs, outcomes)
	}

	for index, address := range pending {
		jobs <- lookupJob{index: index, address: address}
	}
	close(jobs)

	wgr.Wait()
	close(outcomes)

	result := batchResult{
		outcomes:  make([]lookupOutcome, 0, len(pending)),
		succeeded: make(map[int]*models.Coordinates, len(pending)),
		failed:    make(map[int]string),
	}
	for outcome := range outcomes {
		result.outcomes = append(result.outcomes, outcome)
		if outcome.coords != nil {
			result.succeeded[outcome.index] = outcome.coords
		} else {
			result.failed[outcome.index] = outcome.address
		}
	}

	return result
}

// worker consumes lookup jobs from the jobs channel and sends one outcome per
// job. Each worker only ever writes to its own outcome values, so no locking
// is needed anywhere in the round.
func (r *Resolver) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan lookupJob,
	outcomes chan<- lookupOutcome,
) {
	defer wg.Done()
	for job := range jobs {
		r.metrics.ActiveWorkers.Inc()
		r.log.DebugContext(ctx, "Resolving address", "worker", idx, "index", job.index)

		coords := r.resolveOne(ctx, job.address)
		if coords != nil {
			r.metrics.Lookups.WithLabelValues("success").Inc()
		} else {
			r.metrics.Lookups.WithLabelValues("failure").Inc()
		}

		outcomes <- lookupOutcome{index: job.index, address: job.address, coords: coords}
		r.metrics.ActiveWorkers.Dec()
	}
}

// resolveOne delegates a single lookup to the provider and collapses every
// non-success response (rate limit, not found, network error, empty result)
// into a nil result. Retry is the caller's responsibility, applied uniformly
// across the batch, never here.
func (r *Resolver) resolveOne(ctx context.Context, address string) *models.Coordinates {
	startTime := time.Now()
	coords, err := r.provider.Geocode(ctx, address)
	duration := time.Since(startTime).Seconds()
	r.metrics.RequestSeconds.WithLabelValues(r.providerName).Observe(duration)

	if err != nil {
		r.log.DebugContext(ctx, "Lookup failed", "address", address, "error", err)
		r.metrics.APIErrors.Inc()
		return nil
	}

	// An empty coordinate from the provider counts as a failure too.
	return coords
}

// clampWorkers bounds the pool size: never more workers than host parallelism
// and never more than there are jobs to run.
func clampWorkers(concurrency, jobCount int) int {
	limit := runtime.NumCPU()
	workers := concurrency
	if workers <= 0 || workers > limit {
		workers = limit
	}
	if workers > jobCount {
		workers = jobCount
	}

	return workers
}
