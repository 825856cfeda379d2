package adoptions

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, req AdoptionRequest) error
	GetByID(ctx context.Context, id string) (AdoptionRequest, error)
	ListByOwner(ctx context.Context, owner string) ([]AdoptionRequest, error)

	// UpdateStatus cambia solo el estado del request (flujo de rechazo).
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error

	// Accept marca la mascota referenciada como adoptada (adopted=true,
	// status unavailable) Y el request como accepted, como UNA unidad:
	// si cualquiera de los dos writes falla, ninguno queda visible.
	// Mascota ya adoptada o request ya resuelto => ErrBadState;
	// request ausente => ErrNotFound. El estado se revalida dentro de
	// la unidad atómica, no solo en el service.
	Accept(ctx context.Context, requestID string, updatedAt time.Time) (AdoptionRequest, error)
}
