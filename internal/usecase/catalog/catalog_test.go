package catalog

import (
	"context"
	"testing"

	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
)

type stubRepo struct {
	services []models.Service
	staff    []models.Staff
	gotIDs   []uint
}

func (s *stubRepo) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	return s.services, nil
}

func (s *stubRepo) ListStaffOfferingAll(ctx context.Context, serviceIDs []uint) ([]models.Staff, error) {
	s.gotIDs = serviceIDs
	return s.staff, nil
}

func TestListStaffForServicesRequiresIDs(t *testing.T) {
	r := NewReader(&stubRepo{})

	_, err := r.ListStaffForServices(context.Background(), nil)
	if !httperr.IsBusiness(err, "missing_servicios") {
		t.Fatalf("got %v, want missing_servicios", err)
	}
}

func TestListStaffForServicesPassesThrough(t *testing.T) {
	stub := &stubRepo{staff: []models.Staff{{ID: 7}}}
	r := NewReader(stub)

	staff, err := r.ListStaffForServices(context.Background(), []uint{1, 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(staff) != 1 || staff[0].ID != 7 {
		t.Errorf("staff = %+v", staff)
	}
	if len(stub.gotIDs) != 2 {
		t.Errorf("repo received ids %v", stub.gotIDs)
	}
}
