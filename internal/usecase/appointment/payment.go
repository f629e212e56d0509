package appointment

import (
	"context"
	"time"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/payments"
	"github.com/estilobarber/barberia-api/internal/timezone"
)

// ======================================================
// UPDATE PAYMENT
// ======================================================

type UpdatePaymentInput struct {
	Status        string
	Method        string
	Paid          float64
	Tax           float64
	Tip           float64
	InvoiceIssued bool

	// Override allows recording more than the computed total, e.g. a
	// generous tip entered as payment.
	Override bool
}

type UpdatePayment struct {
	repo domain.Repository
	tz   string
}

func NewUpdatePayment(repo domain.Repository, tz string) *UpdatePayment {
	return &UpdatePayment{repo: repo, tz: tz}
}

func (uc *UpdatePayment) Execute(
	ctx context.Context,
	appointmentID uint,
	in UpdatePaymentInput,
) (*models.Payment, error) {

	p, err := uc.repo.GetPayment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	switch in.Status {
	case models.PaymentPendiente, models.PaymentParcial, models.PaymentPagado, models.PaymentReembolsado:
	default:
		return nil, httperr.Validation("estado_pago_desconocido", "Estado de pago no reconocido.")
	}

	if in.Tax < 0 || in.Tip < 0 || in.Paid < 0 {
		return nil, httperr.Validation("monto_invalido", "Los montos no pueden ser negativos.")
	}

	if (in.Status == models.PaymentPagado || in.Status == models.PaymentParcial) &&
		in.Paid > p.Total+in.Tax+in.Tip+0.01 && !in.Override {
		return nil, httperr.Validation("pago_excede_total", "El pago excede el total de la cita.")
	}

	p.Status = in.Status
	p.Paid = in.Paid
	p.Tax = in.Tax
	p.Tip = in.Tip
	p.InvoiceIssued = in.InvoiceIssued
	if in.Method != "" {
		p.Method = in.Method
	}
	if in.Status == models.PaymentPagado && p.PaidAt == nil {
		now := timezone.NowIn(uc.tz)
		p.PaidAt = &now
	}

	if err := uc.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ======================================================
// CHECKOUT
// ======================================================

// CreateCheckout builds a hosted checkout for the cita's pending payment.
type CreateCheckout struct {
	repo    domain.Repository
	gateway payments.Gateway
}

func NewCreateCheckout(repo domain.Repository, gateway payments.Gateway) *CreateCheckout {
	return &CreateCheckout{repo: repo, gateway: gateway}
}

func (uc *CreateCheckout) Execute(
	ctx context.Context,
	appointmentID uint,
) (*payments.Checkout, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.Payment == nil {
		return nil, httperr.NotFoundErr("pago_not_found", "Pago no encontrado.")
	}
	if ap.Payment.Status == models.PaymentPagado {
		return nil, httperr.Conflict("pago_ya_realizado", "La cita ya está pagada.")
	}

	items := make([]payments.CheckoutItem, 0, len(ap.Services))
	for _, ls := range ap.Services {
		items = append(items, payments.CheckoutItem{
			Title:     ls.Service.Name,
			Quantity:  ls.Quantity,
			UnitPrice: ls.Price,
		})
	}

	ctxGw, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	checkout, err := uc.gateway.CreateCheckout(ctxGw, payments.CheckoutRequest{
		Reference: ap.Payment.Reference,
		Items:     items,
	})
	if err != nil {
		return nil, err
	}

	ap.Payment.CheckoutID = checkout.ID
	ap.Payment.CheckoutURL = checkout.URL
	if err := uc.repo.UpdatePayment(ctx, ap.Payment); err != nil {
		return nil, err
	}

	return checkout, nil
}
