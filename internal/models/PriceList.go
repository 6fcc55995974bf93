package models

// PriceList versions a fare table for a (route, category) pair over time.
// EffectiveFrom is a calendar date ("2006-01-02"); the applicable version
// as of a date is the latest one not exceeding it.
type PriceList struct {
	ID            int    `json:"id" gorm:"primaryKey"`
	RouteID       int    `json:"route_id" gorm:"index"`
	CategoryID    int    `json:"category_id" gorm:"index"`
	EffectiveFrom string `json:"effective_from"`
}
