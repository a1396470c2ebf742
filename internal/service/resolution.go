package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/composer"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/repository"
	"github.com/UnknownOlympus/waypoint/internal/resolver"
)

// ResolutionService periodically pulls unresolved address rows from the
// repository, composes their raw fields into canonical address strings and
// feeds them through the resolver, splicing resolved coordinates back to the
// originating rows by position.
type ResolutionService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	composer     *composer.Composer   // Composer for building canonical address strings
	resolver     *resolver.Resolver   // Resolver for concurrent coordinate lookups
	concurrency  int                  // Number of concurrent workers for lookups
	pollInterval time.Duration        // Interval for polling pending addresses
	batchLimit   int                  // Maximum address rows fetched per cycle
}

// NewResolutionService creates a new instance of ResolutionService.
func NewResolutionService(
	log *slog.Logger,
	repo repository.Interface,
	addressComposer *composer.Composer,
	addressResolver *resolver.Resolver,
	concurrency int,
	pollInterval time.Duration,
	batchLimit int,
) *ResolutionService {
	return &ResolutionService{
		log:          log,
		repo:         repo,
		composer:     addressComposer,
		resolver:     addressResolver,
		concurrency:  concurrency,
		pollInterval: pollInterval,
		batchLimit:   batchLimit,
	}
}

// Run starts the resolution service, which periodically polls for address rows
// to resolve. It listens for a cancellation signal from the context to
// gracefully stop the service.
func (rs *ResolutionService) Run(ctx context.Context) {
	ticker := time.NewTicker(rs.pollInterval)
	defer ticker.Stop()

	rs.log.InfoContext(ctx, "Resolution service started...")

	for {
		select {
		case <-ctx.Done():
			rs.log.InfoContext(ctx, "Resolution service stopped.")
			return
		case <-ticker.C:
			rs.log.InfoContext(ctx, "Polling for pending addresses...")
			rs.processBatch(ctx)
		}
	}
}

// processBatch fetches pending address rows, composes their fields, resolves
// the composed addresses and writes the outcome of every row back: resolved
// coordinates for successes, an attempt-count bump for rows that stayed
// unresolved after the retry budget.
func (rs *ResolutionService) processBatch(ctx context.Context) {
	records, err := rs.repo.FetchPendingAddresses(ctx, rs.batchLimit)
	if err != nil {
		rs.log.ErrorContext(ctx, "Failed to fetch pending addresses", "error", err)
		return
	}
	if len(records) == 0 {
		rs.log.InfoContext(ctx, "No pending addresses to process.")
		return
	}

	streets := make([]string, len(records))
	settlements := make([]string, len(records))
	regions := make([]string, len(records))
	postcodes := make([]string, len(records))
	for i, record := range records {
		streets[i] = record.Street
		settlements[i] = record.Settlement
		regions[i] = record.Region
		postcodes[i] = record.Postcode
	}

	addresses, err := rs.composer.Compose(ctx, streets, settlements, regions, postcodes)
	if err != nil {
		rs.log.ErrorContext(ctx, "Failed to compose addresses", "error", err)
		return
	}

	rs.log.InfoContext(ctx, "Resolving batch of addresses", "rows", len(records))

	coordinates := rs.resolver.FetchCoordinates(ctx, addresses, rs.concurrency)

	for i, coords := range coordinates {
		rs.storeOutcome(ctx, records[i], coords)
	}

	rs.log.InfoContext(ctx, "Processing batch finished")
}

// storeOutcome persists the terminal state of one row after a batch.
func (rs *ResolutionService) storeOutcome(ctx context.Context, record models.AddressRecord, coords *models.Coordinates) {
	if coords == nil {
		if err := rs.repo.IncrementFailureCount(ctx, record.ID); err != nil {
			rs.log.ErrorContext(ctx, "Could not update attempt count for address",
				"record", record.ID, "error", err)
		}
		return
	}

	if err := rs.repo.UpdateCoordinates(ctx, record.ID, *coords); err != nil {
		rs.log.ErrorContext(ctx, "Failed to update coordinates for address",
			"record", record.ID, "error", err)
		return
	}

	rs.log.DebugContext(ctx, "Address resolved", "record", record.ID, "coordinates", coords.String())
}
