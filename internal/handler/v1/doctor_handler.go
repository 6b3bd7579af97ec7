package v1

import (
	"github.com/clinicore/clinicore/internal/service"
	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorSvc     *service.DoctorService
	assignmentSvc *service.AssignmentService
}

func NewDoctorHandler(doctorSvc *service.DoctorService, assignmentSvc *service.AssignmentService) *DoctorHandler {
	return &DoctorHandler{doctorSvc: doctorSvc, assignmentSvc: assignmentSvc}
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.doctorSvc.ListDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.doctorSvc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, doctor)
}

func (h *DoctorHandler) ListAssignedPatients(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	patients, err := h.assignmentSvc.ListAssignedPatients(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}
