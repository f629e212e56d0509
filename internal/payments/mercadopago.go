package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MercadoPago creates checkout preferences against the Mercado Pago API.
type MercadoPago struct {
	client preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: invalid credentials: %w", err)
	}

	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	items := make([]preference.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, preference.ItemRequest{
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	resp, err := m.client.Create(ctx, preference.Request{
		Items:             items,
		ExternalReference: req.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago: create preference: %w", err)
	}

	return &Checkout{ID: resp.ID, URL: resp.InitPoint}, nil
}

// Compile-time check
var _ Gateway = (*MercadoPago)(nil)
