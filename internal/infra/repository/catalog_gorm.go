package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/usecase/catalog"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListActiveServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("category ASC, name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

// ListStaffOfferingAll returns active staff (with an active user account)
// whose offered-services set covers every requested id.
func (r *CatalogGormRepository) ListStaffOfferingAll(
	ctx context.Context,
	serviceIDs []uint,
) ([]models.Staff, error) {

	var staffIDs []uint
	if err := r.db.WithContext(ctx).
		Table("staff_services").
		Select("staff_id").
		Where("service_id IN ?", serviceIDs).
		Group("staff_id").
		Having("COUNT(DISTINCT service_id) = ?", len(dedup(serviceIDs))).
		Scan(&staffIDs).Error; err != nil {
		return nil, err
	}

	if len(staffIDs) == 0 {
		return []models.Staff{}, nil
	}

	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = staffs.user_id AND users.active = ?", true).
		Where("staffs.id IN ? AND staffs.active = ?", staffIDs, true).
		Order("staffs.id ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}

	return staff, nil
}

func dedup(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Compile-time check
var _ catalog.Repository = (*CatalogGormRepository)(nil)
