package api

import (
	"net/http"

	"reservequeue/internal/service"
)

type HospitalHandler struct {
	Service *service.HospitalService
}

func NewHospitalHandler(svc *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{Service: svc}
}

func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.ListHospitals())
}
