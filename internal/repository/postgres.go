package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// FetchPendingAddresses retrieves a batch of address rows that still need
// resolving. It returns rows that have a NULL latitude, fewer than 5 resolution
// attempts, and at least a non-empty street field. The results are ordered by
// creation date and limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of rows to retrieve.
//
// Returns:
// - A slice of models.AddressRecord containing the rows that match the criteria.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchPendingAddresses(ctx context.Context, limit int) ([]models.AddressRecord, error) {
	var records []models.AddressRecord
	query := `
		SELECT address_id, street, settlement, region, postcode
		FROM public.addresses
		WHERE
			latitude IS NULL
			AND resolution_attempts < 5
			AND street IS NOT NULL AND street <> ''
		ORDER BY created_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.AddressRecord
		if errScan := rows.Scan(
			&record.ID, &record.Street, &record.Settlement, &record.Region, &record.Postcode,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending address: %w", errScan)
		}
		r.log.DebugContext(ctx, "A new address row without coordinates has been received.",
			"ID", record.ID, "Street", record.Street)
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return records, nil
}

// UpdateCoordinates stores the resolved latitude and longitude for the row
// identified by recordID. It returns an error if the update fails.
func (r *Repository) UpdateCoordinates(ctx context.Context, recordID int, coords models.Coordinates) error {
	query := `
		UPDATE addresses
		SET
			latitude = $1,
			longitude = $2
		WHERE
			address_id = $3;
	`

	_, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, recordID)
	if err != nil {
		return fmt.Errorf("failed to update address coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the resolution attempt count for the row
// identified by recordID, so rows that never resolve age out of the queue.
func (r *Repository) IncrementFailureCount(ctx context.Context, recordID int) error {
	query := `
		UPDATE addresses
		SET resolution_attempts = resolution_attempts + 1
		WHERE address_id = $1;
	`

	_, err := r.db.Exec(ctx, query, recordID)
	if err != nil {
		return fmt.Errorf("failed to update number of resolution attempts: %w", err)
	}

	return nil
}
