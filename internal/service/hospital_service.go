package service

import (
	"reservequeue/internal/catalog"
	"reservequeue/internal/entities"
	"reservequeue/internal/repository"
)

type HospitalService struct {
	repo *repository.HospitalRepository
}

func NewHospitalService(repo *repository.HospitalRepository) *HospitalService {
	return &HospitalService{repo: repo}
}

func (s *HospitalService) ListHospitals() []entities.Hospital {
	shops := s.repo.List()
	out := make([]entities.Hospital, 0, len(shops))
	for _, shop := range shops {
		out = append(out, catalog.ToHospital(shop))
	}
	return out
}
