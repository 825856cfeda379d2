package adoptions

import "time"

// Status define el ciclo de vida de una solicitud de adopción.
// @Enum pending, accepted, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// AdoptionRequest referencia una mascota por PetID (sin integridad
// referencial: borrar la mascota deja la referencia colgando).
// Owner es el email del dueño de la mascota; Requester* identifican
// a quien pide adoptar.
type AdoptionRequest struct {
	ID    string
	PetID string
	Owner string

	PetName        string
	RequesterName  string
	RequesterEmail string
	Phone          string
	Address        string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
