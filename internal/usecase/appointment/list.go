package appointment

import (
	"context"
	"time"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/dto"
	"github.com/estilobarber/barberia-api/internal/models"
)

type ListMyCitas struct {
	repo domain.Repository
}

func NewListMyCitas(repo domain.Repository) *ListMyCitas {
	return &ListMyCitas{repo: repo}
}

func (uc *ListMyCitas) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.CitaListDTO, error) {

	apps, err := uc.repo.ListForCustomerUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toDTOs(apps), nil
}

type ListCitasByDate struct {
	repo domain.Repository
}

func NewListCitasByDate(repo domain.Repository) *ListCitasByDate {
	return &ListCitasByDate{repo: repo}
}

// Execute lists the day's citas; staffID 0 means every staff member.
func (uc *ListCitasByDate) Execute(
	ctx context.Context,
	staffID uint,
	date time.Time,
) ([]dto.CitaListDTO, error) {

	start, end := dayBounds(date)
	apps, err := uc.repo.ListForPeriod(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	return toDTOs(apps), nil
}

func toDTOs(apps []models.Appointment) []dto.CitaListDTO {
	out := make([]dto.CitaListDTO, 0, len(apps))
	for _, ap := range apps {
		item := dto.CitaListDTO{
			ID:           ap.ID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			EmpleadoName: ap.Staff.User.Name,
			ClienteName:  ap.Customer.User.Name,
		}

		for _, ls := range ap.Services {
			item.Services = append(item.Services, dto.CitaServiceDTO{
				ServiceID: ls.ServiceID,
				Name:      ls.Service.Name,
				Quantity:  ls.Quantity,
				Price:     ls.Price,
			})
		}

		if ap.Payment != nil {
			item.Total = ap.Payment.Total
			item.PaymentStatus = ap.Payment.Status
		}

		out = append(out, item)
	}
	return out
}
