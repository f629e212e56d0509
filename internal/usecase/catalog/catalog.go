package catalog

import (
	"context"

	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
)

// Repository is the read-only storage surface behind the catalog. No
// mutation ever flows through here.
type Repository interface {
	ListActiveServices(ctx context.Context) ([]models.Service, error)
	ListStaffOfferingAll(ctx context.Context, serviceIDs []uint) ([]models.Staff, error)
}

type Reader struct {
	repo Repository
}

func NewReader(repo Repository) *Reader {
	return &Reader{repo: repo}
}

// ListBookableServices returns every active service.
func (r *Reader) ListBookableServices(ctx context.Context) ([]models.Service, error) {
	return r.repo.ListActiveServices(ctx)
}

// ListStaffForServices returns active staff able to attend every service in
// serviceIDs.
func (r *Reader) ListStaffForServices(ctx context.Context, serviceIDs []uint) ([]models.Staff, error) {
	if len(serviceIDs) == 0 {
		return nil, httperr.Validation("missing_servicios", "Debe indicar al menos un servicio.")
	}
	return r.repo.ListStaffOfferingAll(ctx, serviceIDs)
}
