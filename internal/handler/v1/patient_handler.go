package v1

import (
	"time"

	"github.com/clinicore/clinicore/internal/domain/patient"
	"github.com/clinicore/clinicore/internal/service"
	"github.com/clinicore/clinicore/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientSvc    *service.PatientService
	assignmentSvc *service.AssignmentService
	collector     *metrics.Collector
}

func NewPatientHandler(patientSvc *service.PatientService, assignmentSvc *service.AssignmentService, collector *metrics.Collector) *PatientHandler {
	return &PatientHandler{
		patientSvc:    patientSvc,
		assignmentSvc: assignmentSvc,
		collector:     collector,
	}
}

type createPatientRequest struct {
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" binding:"required"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`
	Notes       string     `json:"notes"`
}

type updatePatientRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	Address     *string    `json:"address"`
	Notes       *string    `json:"notes"`
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patientSvc.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patientSvc.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      patient.Gender(req.Gender),
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Notes:       req.Notes,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.PatientsCreatedTotal.Inc()
	respondCreated(c, p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.patientSvc.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &patient.UpdatePatientCommand{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Notes:       req.Notes,
	}
	if req.Gender != nil {
		g := patient.Gender(*req.Gender)
		cmd.Gender = &g
	}

	p, err := h.patientSvc.UpdatePatient(c.Request.Context(), id, cmd, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.patientSvc.DeletePatient(c.Request.Context(), id, actorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Patient deleted successfully")
}

func (h *PatientHandler) AssignDoctor(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	doctorID, ok := parseUUID(c, "doctor_id")
	if !ok {
		return
	}

	a, err := h.assignmentSvc.Assign(c.Request.Context(), patientID, doctorID, actorFrom(c))
	if err != nil {
		h.collector.AssignmentsTotal.WithLabelValues("failed").Inc()
		respondServiceError(c, err)
		return
	}

	h.collector.AssignmentsTotal.WithLabelValues("assigned").Inc()
	respondCreated(c, a)
}

func (h *PatientHandler) UnassignDoctor(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	doctorID, ok := parseUUID(c, "doctor_id")
	if !ok {
		return
	}

	if err := h.assignmentSvc.Unassign(c.Request.Context(), patientID, doctorID, actorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AssignmentsTotal.WithLabelValues("unassigned").Inc()
	respondMessage(c, "Doctor unassigned successfully")
}

func (h *PatientHandler) ListAssignedDoctors(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	doctors, err := h.assignmentSvc.ListAssignedDoctors(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, doctors)
}
