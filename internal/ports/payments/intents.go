package payments

import "context"

// Intent es el resultado de crear un payment intent en el procesador.
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentCreator crea intents de pago contra el procesador externo.
// amount viene en la moneda base (USD); el adapter convierte a centavos.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount float64) (Intent, error)
}
