package campaigns

import "time"

// DonationCampaign es una campaña de donación asociada a una mascota.
// DonatedAmount es un total acumulado: solo se muta vía el increment
// atómico del repo, nunca por read-modify-write.
type DonationCampaign struct {
	ID    string
	Owner string

	PetName string
	Image   string

	MaxDonation   float64
	DonatedAmount float64

	LastDate time.Time

	ShortDescription string
	LongDescription  string

	IsPaused bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pagination acompaña los listados públicos de campañas.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasMore     bool `json:"hasMore"`
	Limit       int  `json:"limit"`
}
