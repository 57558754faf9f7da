// Package models defines the data structures for the compatibility engine.
package models

// InterestValue is a user's signed preference for an item.
type InterestValue int

const (
	Dislike InterestValue = -1
	Like    InterestValue = 1
)

// IsValid checks that the value is one of Like or Dislike.
func (v InterestValue) IsValid() bool {
	return v == Like || v == Dislike
}

// InterestItem is a catalog entry a user can like or dislike.
type InterestItem struct {
	ID        int64    `json:"id" db:"id"`
	Label     string   `json:"label" db:"label"`
	ListCodes []string `json:"list_codes" db:"list_codes"`
}

// UserInterest is one user_interest_items row joined with its catalog item.
// MissingItem is set when the row references an item absent from the catalog.
type UserInterest struct {
	UserID      string        `json:"user_id" db:"user_id"`
	ItemID      int64         `json:"item_id" db:"item_id"`
	Value       InterestValue `json:"value" db:"value"`
	Item        InterestItem  `json:"interest_items"`
	MissingItem bool          `json:"-"`
}

// Usable reports whether the row can take part in scoring.
func (ui UserInterest) Usable() bool {
	return !ui.MissingItem && ui.Value.IsValid()
}

// InterestEntry is the per-item view used by scoring.
type InterestEntry struct {
	Value     InterestValue
	Label     string
	ListCodes []string
}

// InterestSet maps item id to the user's entry for that item.
type InterestSet map[int64]InterestEntry

// NewInterestSet builds an InterestSet from repository rows, skipping rows
// that are not usable. Later rows for the same item replace earlier ones, so
// the set holds one entry per item.
func NewInterestSet(rows []UserInterest) InterestSet {
	set := make(InterestSet, len(rows))
	for _, row := range rows {
		if !row.Usable() {
			continue
		}
		set[row.ItemID] = InterestEntry{
			Value:     row.Value,
			Label:     row.Item.Label,
			ListCodes: row.Item.ListCodes,
		}
	}
	return set
}
