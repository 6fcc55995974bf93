package models

// PriceListItem is one fare within a price list, keyed by the ordered
// (from, to) station pair. A->B and B->A are distinct rows; no symmetry
// is implied.
type PriceListItem struct {
	ID            int     `json:"id" gorm:"primaryKey"`
	PriceListID   int     `json:"price_list_id" gorm:"index"`
	FromStationID int     `json:"from_station_id"`
	ToStationID   int     `json:"to_station_id"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
}
