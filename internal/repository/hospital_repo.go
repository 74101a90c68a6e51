package repository

import (
	"reservequeue/internal/catalog"
)

// HospitalRepository serves the fixed shop catalog. It never changes after
// construction, so it needs no lock.
type HospitalRepository struct {
	catalog *catalog.Catalog
}

func NewHospitalRepository(c *catalog.Catalog) *HospitalRepository {
	if c == nil {
		c = catalog.Builtin()
	}
	return &HospitalRepository{catalog: c}
}

func (r *HospitalRepository) List() []catalog.Shop {
	return r.catalog.All()
}

func (r *HospitalRepository) Get(id int) (catalog.Shop, error) {
	return r.catalog.Lookup(id)
}
