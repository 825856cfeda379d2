package donations

import "time"

// Donation es el registro financiero append-only de una donación.
// Nunca se edita ni borra; las correcciones van por el flujo de
// revert sobre la campaña.
type Donation struct {
	ID         string
	CampaignID string
	DonatedBy  string

	PetName string
	Amount  float64

	CreatedAt time.Time
}
