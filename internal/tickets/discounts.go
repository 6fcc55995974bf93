package tickets

// DiscountOption is a fare reduction the driver can apply at sale time.
type DiscountOption struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// Discounts returns the reductions offered on the terminal. The table is
// static for now; discount types are not yet part of the master data sync.
func Discounts() []DiscountOption {
	return []DiscountOption{
		{ID: 1, Label: "Reducere 50%", Percent: 50},
	}
}

// DiscountByID returns the option with the given id, or nil.
func DiscountByID(id int) *DiscountOption {
	for _, d := range Discounts() {
		if d.ID == id {
			return &d
		}
	}
	return nil
}
