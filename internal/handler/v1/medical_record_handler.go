package v1

import (
	"github.com/clinicore/clinicore/internal/domain/medicalrecord"
	"github.com/clinicore/clinicore/internal/service"
	"github.com/clinicore/clinicore/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	recordSvc *service.MedicalRecordService
	collector *metrics.Collector
}

func NewMedicalRecordHandler(recordSvc *service.MedicalRecordService, collector *metrics.Collector) *MedicalRecordHandler {
	return &MedicalRecordHandler{recordSvc: recordSvc, collector: collector}
}

type createRecordRequest struct {
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

type updateRecordRequest struct {
	Diagnosis *string `json:"diagnosis"`
	Treatment *string `json:"treatment"`
	Notes     *string `json:"notes"`
}

func (h *MedicalRecordHandler) List(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	records, err := h.recordSvc.ListRecords(c.Request.Context(), patientID, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, records)
}

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req createRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := actorFrom(c)
	rec, err := h.recordSvc.CreateRecord(c.Request.Context(), &medicalrecord.CreateRecordCommand{
		PatientID: patientID,
		DoctorID:  actor.ID,
		Diagnosis: req.Diagnosis,
		Treatment: req.Treatment,
		Notes:     req.Notes,
	}, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.MedicalRecordsTotal.WithLabelValues("create").Inc()
	respondCreated(c, rec)
}

func (h *MedicalRecordHandler) Get(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	recordID, ok := parseUUID(c, "record_id")
	if !ok {
		return
	}

	rec, err := h.recordSvc.GetRecord(c.Request.Context(), patientID, recordID, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	recordID, ok := parseUUID(c, "record_id")
	if !ok {
		return
	}

	var req updateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.recordSvc.UpdateRecord(c.Request.Context(), patientID, recordID, &medicalrecord.UpdateRecordCommand{
		Diagnosis: req.Diagnosis,
		Treatment: req.Treatment,
		Notes:     req.Notes,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.MedicalRecordsTotal.WithLabelValues("update").Inc()
	respondOK(c, rec)
}

func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	recordID, ok := parseUUID(c, "record_id")
	if !ok {
		return
	}

	if err := h.recordSvc.DeleteRecord(c.Request.Context(), patientID, recordID, actorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.MedicalRecordsTotal.WithLabelValues("delete").Inc()
	respondMessage(c, "Medical record deleted successfully")
}
