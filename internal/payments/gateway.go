package payments

import (
	"context"

	"github.com/estilobarber/barberia-api/internal/httperr"
)

type CheckoutItem struct {
	Title     string
	Quantity  int
	UnitPrice float64
}

type CheckoutRequest struct {
	// Reference is the payment's uuid; it ties the gateway record back to
	// the cita.
	Reference string
	Items     []CheckoutItem
}

type Checkout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Gateway creates hosted checkouts for a cita's payment.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
}

// Disabled is used when no gateway credentials are configured.
type Disabled struct{}

func (Disabled) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	return nil, httperr.Validation("pasarela_no_configurada", "Pagos en línea no disponibles.")
}
