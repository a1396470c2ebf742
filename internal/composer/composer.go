package composer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/UnknownOlympus/waypoint/internal/metrics"
)

// ErrMismatchedColumns is returned when the address field columns differ in length.
var ErrMismatchedColumns = errors.New("address field columns must be equal in length")

// Composer builds one canonical address string per record from aligned field
// columns and surfaces duplicate composed addresses. The last computed result
// is cached for later inspection.
type Composer struct {
	log     *slog.Logger     // Logger for advisory notices
	metrics *metrics.Metrics // Metrics for duplicate reporting

	mu             sync.Mutex
	lastComposed   []string
	lastDuplicates []string
}

// NewComposer creates a new Composer with the given logger and metrics.
func NewComposer(log *slog.Logger, metrics *metrics.Metrics) *Composer {
	return &Composer{log: log, metrics: metrics}
}

// Compose joins the aligned field columns row by row into canonical address
// strings. Each value has commas stripped and surrounding whitespace trimmed;
// row values are then joined with single spaces. The result preserves the
// order and length of the input columns.
//
// All columns must be equal in length, otherwise ErrMismatchedColumns is
// returned and no partial result is produced. Missing values are treated as
// empty strings.
//
// Duplicate composed addresses are counted and reported as an advisory
// notice; they do not block further processing.
func (c *Composer) Compose(ctx context.Context, columns ...[]string) ([]string, error) {
	if len(columns) == 0 {
		return []string{}, nil
	}

	rows := len(columns[0])
	for _, column := range columns[1:] {
		if len(column) != rows {
			return nil, ErrMismatchedColumns
		}
	}

	composed := make([]string, rows)
	parts := make([]string, len(columns))
	for i := range rows {
		for j, column := range columns {
			parts[j] = strings.TrimSpace(strings.ReplaceAll(column[i], ",", ""))
		}
		composed[i] = strings.Join(parts, " ")
	}

	duplicates := findDuplicates(composed)
	c.metrics.DuplicateAddresses.Set(float64(len(duplicates)))
	if len(duplicates) > 0 {
		c.log.InfoContext(ctx, "Found duplicated addresses after composition",
			"duplicates", len(duplicates), "total", rows)
	}

	c.mu.Lock()
	c.lastComposed = composed
	c.lastDuplicates = duplicates
	c.mu.Unlock()

	return composed, nil
}

// LastComposed returns the addresses produced by the most recent Compose call.
func (c *Composer) LastComposed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastComposed
}

// LastDuplicates returns the duplicated addresses found by the most recent
// Compose call, one entry per repeated occurrence.
func (c *Composer) LastDuplicates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDuplicates
}

// findDuplicates returns every occurrence of an address that was already seen
// earlier in the list; a triple of identical addresses reports two duplicates.
func findDuplicates(addresses []string) []string {
	seen := make(map[string]bool, len(addresses))
	var duplicates []string
	for _, address := range addresses {
		if seen[address] {
			duplicates = append(duplicates, address)
		}
		seen[address] = true
	}

	return duplicates
}
