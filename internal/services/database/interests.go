package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"compatibility-engine/internal/models"
	"compatibility-engine/internal/utils"
)

const interestColumns = `
		SELECT uii.user_id::text, uii.item_id, uii.value, ii.label, ii.list_codes
		FROM user_interest_items uii
		LEFT JOIN interest_items ii ON ii.id = uii.item_id`

// InterestRepository reads user interest rows joined with the item catalog.
type InterestRepository struct {
	db *DB
}

// NewInterestRepository creates a new interest repository.
func NewInterestRepository(db *DB) *InterestRepository {
	return &InterestRepository{db: db}
}

// GetUserInterests returns every interest row of one user, including rows
// that cannot be scored (see models.UserInterest.Usable).
func (r *InterestRepository) GetUserInterests(ctx context.Context, userID string) ([]models.UserInterest, error) {
	interests := make([]models.UserInterest, 0)

	id, ok := canonicalID(userID)
	if !ok {
		return interests, nil
	}

	rows, err := r.db.QueryContext(ctx, interestColumns+`
		WHERE uii.user_id = $1::uuid
		ORDER BY uii.item_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user interests: %w", err)
	}
	defer rows.Close()

	err = collectInterests(rows, true, func(ui models.UserInterest) error {
		interests = append(interests, ui)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return interests, nil
}

// ScanOtherInterests streams every usable interest row not owned by
// excludeUserID through fn in a single query. A malformed excludeUserID owns
// no rows, so nothing is excluded.
func (r *InterestRepository) ScanOtherInterests(ctx context.Context, excludeUserID string, fn func(models.UserInterest) error) error {
	query, args := scanQuery(excludeUserID)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query population interests: %w", err)
	}
	defer rows.Close()

	return collectInterests(rows, false, fn)
}

func scanQuery(excludeUserID string) (string, []interface{}) {
	id, ok := canonicalID(excludeUserID)
	if !ok {
		return interestColumns, nil
	}
	return interestColumns + `
		WHERE uii.user_id <> $1::uuid`, []interface{}{id}
}

// interestRow is the raw shape of one joined row. The item columns are
// nullable because the join is outer.
type interestRow struct {
	UserID    string
	ItemID    int64
	Value     int
	Label     *string
	ListCodes []string
}

func (r interestRow) toModel() models.UserInterest {
	ui := models.UserInterest{
		UserID: r.UserID,
		ItemID: r.ItemID,
		Value:  models.InterestValue(r.Value),
	}
	if r.Label == nil {
		ui.MissingItem = true
		return ui
	}
	ui.Item = models.InterestItem{
		ID:        r.ItemID,
		Label:     *r.Label,
		ListCodes: r.ListCodes,
	}
	return ui
}

// collectInterests feeds rows to fn. Unusable rows are passed through only
// when keepUnusable is set; either way they are counted in a warning.
func collectInterests(rows pgx.Rows, keepUnusable bool, fn func(models.UserInterest) error) error {
	unusable := 0
	for rows.Next() {
		var raw interestRow
		if err := rows.Scan(&raw.UserID, &raw.ItemID, &raw.Value, &raw.Label, &raw.ListCodes); err != nil {
			return fmt.Errorf("failed to scan interest row: %w", err)
		}

		ui := raw.toModel()
		if !ui.Usable() {
			unusable++
			if !keepUnusable {
				continue
			}
		}
		if err := fn(ui); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating interest rows: %w", err)
	}

	if unusable > 0 {
		utils.GetLogger().Warn("Found unusable interest rows", zap.Int("unusable", unusable))
	}
	return nil
}
