package queries

import (
	"context"
	"database/sql"
	"math"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStorePackagesQueryHandler retrieves a store's packages from the database.
// This is a pure read model: rows are scanned directly without rebuilding
// aggregates, since no lifecycle rule applies to a listing.
type GetStorePackagesQueryHandler struct {
	db *gorm.DB
}

// NewGetStorePackagesQueryHandler creates a handler for store listing queries.
// Requires a GORM database connection for query execution.
func NewGetStorePackagesQueryHandler(db *gorm.DB) GetStorePackagesQueryHandler {
	return GetStorePackagesQueryHandler{db: db}
}

// Handle executes the query to retrieve all of a store's packages.
// Results are sorted newest first so the most recent donations lead the list.
func (h GetStorePackagesQueryHandler) Handle(
	ctx context.Context,
	query GetStorePackagesQuery,
) ([]GetStorePackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	packages := make([]GetStorePackagesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_name,
			store_address,
			weight_lbs,
			food_type,
			instructions,
			window_start,
			window_end,
			status,
			courier_id,
			created_at,
			assigned_at,
			picked_up_at,
			completed_at
		FROM packages
		WHERE store_id = ?
		ORDER BY created_at DESC, id
	`, query.StoreID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetStorePackagesQueryResponse
		var id uuid.UUID
		var courierID uuid.NullUUID
		var status int
		var assignedAt, pickedUpAt, completedAt sql.NullTime

		err = rows.Scan(
			&id,
			&resp.StoreName,
			&resp.StoreAddress,
			&resp.WeightLbs,
			&resp.FoodType,
			&resp.Instructions,
			&resp.WindowStart,
			&resp.WindowEnd,
			&status,
			&courierID,
			&resp.CreatedAt,
			&assignedAt,
			&pickedUpAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		packageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = packageID

		if courierID.Valid {
			cID, courierErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if courierErr != nil {
				return nil, courierErr
			}
			resp.CourierID = &cID
		}

		resp.Status = foodpackage.Status(status).String()
		resp.RewardPoints = foodpackage.RewardBasePoints +
			int(math.Floor(resp.WeightLbs*foodpackage.RewardPointsPerPound))

		if assignedAt.Valid {
			t := assignedAt.Time
			resp.AssignedAt = &t
		}
		if pickedUpAt.Valid {
			t := pickedUpAt.Time
			resp.PickedUpAt = &t
		}
		if completedAt.Valid {
			t := completedAt.Time
			resp.CompletedAt = &t
		}

		packages = append(packages, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}
