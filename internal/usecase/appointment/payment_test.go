package appointment

import (
	"context"
	"testing"

	"github.com/estilobarber/barberia-api/internal/httperr"
	infraRepo "github.com/estilobarber/barberia-api/internal/infra/repository"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/payments"
)

func newUpdatePaymentUC(f *fixture) *UpdatePayment {
	return NewUpdatePayment(infraRepo.NewAppointmentGormRepository(f.db), "UTC")
}

func TestUpdatePaymentMarkPaid(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ap := bookOne(t, f, "10:00") // corte, 150
	uc := newUpdatePaymentUC(f)

	p, err := uc.Execute(context.Background(), ap.ID, UpdatePaymentInput{
		Status: models.PaymentPagado,
		Method: "tarjeta",
		Paid:   150,
	})
	if err != nil {
		t.Fatalf("update payment: %v", err)
	}

	if p.Status != models.PaymentPagado {
		t.Errorf("status = %s, want pagado", p.Status)
	}
	if p.Method != "tarjeta" {
		t.Errorf("method = %s, want tarjeta", p.Method)
	}
	if p.PaidAt == nil {
		t.Error("PaidAt not stamped")
	}
}

func TestUpdatePaymentOverpayNeedsOverride(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ap := bookOne(t, f, "10:00")
	uc := newUpdatePaymentUC(f)

	_, err := uc.Execute(context.Background(), ap.ID, UpdatePaymentInput{
		Status: models.PaymentPagado,
		Paid:   500,
	})
	if !httperr.IsBusiness(err, "pago_excede_total") {
		t.Fatalf("got %v, want pago_excede_total", err)
	}

	p, err := uc.Execute(context.Background(), ap.ID, UpdatePaymentInput{
		Status:   models.PaymentPagado,
		Paid:     500,
		Override: true,
	})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if p.Paid != 500 {
		t.Errorf("paid = %v, want 500", p.Paid)
	}
}

func TestUpdatePaymentTipCountsTowardCeiling(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ap := bookOne(t, f, "10:00")
	uc := newUpdatePaymentUC(f)

	// 150 total + 30 tip = 180 received, no override needed.
	if _, err := uc.Execute(context.Background(), ap.ID, UpdatePaymentInput{
		Status: models.PaymentPagado,
		Paid:   180,
		Tip:    30,
	}); err != nil {
		t.Fatalf("payment with tip: %v", err)
	}
}

func TestUpdatePaymentValidation(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ap := bookOne(t, f, "10:00")
	uc := newUpdatePaymentUC(f)

	if _, err := uc.Execute(context.Background(), ap.ID, UpdatePaymentInput{
		Status: "misterioso",
	}); !httperr.IsBusiness(err, "estado_pago_desconocido") {
		t.Fatalf("got %v, want estado_pago_desconocido", err)
	}

	if _, err := uc.Execute(context.Background(), ap.ID, UpdatePaymentInput{
		Status: models.PaymentParcial,
		Paid:   -1,
	}); !httperr.IsBusiness(err, "monto_invalido") {
		t.Fatalf("got %v, want monto_invalido", err)
	}

	if _, err := uc.Execute(context.Background(), 9999, UpdatePaymentInput{
		Status: models.PaymentPagado,
	}); httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

// fakeGateway records the checkout request it receives.
type fakeGateway struct {
	got payments.CheckoutRequest
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, req payments.CheckoutRequest) (*payments.Checkout, error) {
	g.got = req
	return &payments.Checkout{ID: "chk_123", URL: "https://pay.example.com/chk_123"}, nil
}

func TestCreateCheckoutStoresReference(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ap := bookOne(t, f, "10:00")

	gw := &fakeGateway{}
	uc := NewCreateCheckout(infraRepo.NewAppointmentGormRepository(f.db), gw)

	checkout, err := uc.Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if checkout.URL == "" {
		t.Error("checkout URL empty")
	}
	if gw.got.Reference != ap.Payment.Reference {
		t.Errorf("gateway reference = %s, want %s", gw.got.Reference, ap.Payment.Reference)
	}
	if len(gw.got.Items) != 1 || gw.got.Items[0].UnitPrice != 150 {
		t.Errorf("gateway items = %+v", gw.got.Items)
	}

	var p models.Payment
	if err := db.Where("appointment_id = ?", ap.ID).First(&p).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	if p.CheckoutID != "chk_123" || p.CheckoutURL == "" {
		t.Errorf("checkout not stored: %+v", p)
	}
}

func TestCreateCheckoutAlreadyPaid(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ap := bookOne(t, f, "10:00")

	if err := db.Model(&models.Payment{}).
		Where("appointment_id = ?", ap.ID).
		Update("status", models.PaymentPagado).Error; err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	uc := NewCreateCheckout(infraRepo.NewAppointmentGormRepository(f.db), &fakeGateway{})
	_, err := uc.Execute(context.Background(), ap.ID)
	if !httperr.IsBusiness(err, "pago_ya_realizado") {
		t.Fatalf("got %v, want pago_ya_realizado", err)
	}
}

func TestCreateCheckoutDisabledGateway(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ap := bookOne(t, f, "10:00")

	uc := NewCreateCheckout(infraRepo.NewAppointmentGormRepository(f.db), payments.Disabled{})
	_, err := uc.Execute(context.Background(), ap.ID)
	if !httperr.IsBusiness(err, "pasarela_no_configurada") {
		t.Fatalf("got %v, want pasarela_no_configurada", err)
	}
}
