package appointment

import (
	"context"
	"time"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/dto"
	"github.com/estilobarber/barberia-api/internal/httperr"
)

type Stats struct {
	repo domain.Repository
}

func NewStats(repo domain.Repository) *Stats {
	return &Stats{repo: repo}
}

func (uc *Stats) Execute(
	ctx context.Context,
	desde time.Time,
	hasta time.Time,
) (*dto.CitaStatsDTO, error) {

	if !hasta.After(desde) {
		return nil, httperr.Validation("invalid_range", "Rango de fechas inválido.")
	}

	byStatus, err := uc.repo.CountByStatus(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	revenue, err := uc.repo.RevenueForPeriod(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	return &dto.CitaStatsDTO{
		Desde:    desde,
		Hasta:    hasta,
		ByStatus: byStatus,
		Revenue:  revenue,
	}, nil
}
