package models

// Employee is a driver (or other staff member) of an operator.
//
// Password is a local-only credential: the authority never sends it, and
// the synchronizer must never overwrite whatever hash was set on-device.
type Employee struct {
	ID         int    `json:"id" gorm:"primaryKey"`
	Name       string `json:"name"`
	Role       string `json:"role"` // "driver", "operator_admin", ...
	OperatorID int    `json:"operator_id" gorm:"index"`
	Password   string `json:"-"`
}
