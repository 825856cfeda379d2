package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// ListAvailable devuelve mascotas con adopted=false, más nuevas primero.
	ListAvailable(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, owner string) ([]Pet, error)

	Update(ctx context.Context, p Pet) error

	// MarkAdopted es condicional: solo matchea si adopted=false.
	// Cero filas (ausente o ya adoptada) => ErrNotFound del adapter.
	MarkAdopted(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
}
