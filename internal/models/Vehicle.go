package models

// Vehicle is a bus/minibus belonging to an operator. Plate numbers are
// unique per operator on the authority side; nothing is enforced locally.
type Vehicle struct {
	ID          int    `json:"id" gorm:"primaryKey"`
	PlateNumber string `json:"plate_number"`
	OperatorID  int    `json:"operator_id" gorm:"index"`
}
