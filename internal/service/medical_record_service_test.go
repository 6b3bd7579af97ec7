package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicore/clinicore/internal/domain"
	"github.com/clinicore/clinicore/internal/domain/assignment"
	"github.com/clinicore/clinicore/internal/domain/medicalrecord"
	"github.com/clinicore/clinicore/internal/domain/patient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type recordFixture struct {
	svc         *MedicalRecordService
	users       *fakeUserRepo
	assignments *fakeAssignmentRepo

	doctor    *domain.User
	patientID uuid.UUID
}

// newRecordFixture seeds one doctor assigned to one patient.
func newRecordFixture(t *testing.T) *recordFixture {
	t.Helper()

	users := newFakeUserRepo()
	patients := newFakePatientRepo()
	assignments := newFakeAssignmentRepo()
	records := newFakeRecordRepo()

	svc := NewMedicalRecordService(records, patients, assignments, users, newTestAuditService(), zap.NewNop())

	doctor := &domain.User{Email: "doctor@clinic.example", Role: domain.RoleDoctor, IsActive: true}
	if err := users.Create(context.Background(), doctor); err != nil {
		t.Fatalf("seeding doctor: %v", err)
	}

	p := &patient.Patient{FirstName: "Jane", LastName: "Doe", Gender: "female"}
	if err := patients.Create(context.Background(), p); err != nil {
		t.Fatalf("seeding patient: %v", err)
	}

	a := &assignment.PatientDoctor{PatientID: p.ID, DoctorID: doctor.ID}
	if err := assignments.Create(context.Background(), a); err != nil {
		t.Fatalf("seeding assignment: %v", err)
	}

	return &recordFixture{
		svc:         svc,
		users:       users,
		assignments: assignments,
		doctor:      doctor,
		patientID:   p.ID,
	}
}

func (f *recordFixture) doctorActor() Actor {
	return Actor{ID: f.doctor.ID, Role: domain.RoleDoctor, IP: "127.0.0.1"}
}

func (f *recordFixture) mustCreateRecord(t *testing.T) *medicalrecord.MedicalRecord {
	t.Helper()
	rec, err := f.svc.CreateRecord(context.Background(), &medicalrecord.CreateRecordCommand{
		PatientID: f.patientID,
		Diagnosis: "hypertension",
		Treatment: "lisinopril 10mg",
	}, f.doctorActor())
	if err != nil {
		t.Fatalf("creating record: %v", err)
	}
	return rec
}

func TestCreateRecord_AssignedDoctor(t *testing.T) {
	f := newRecordFixture(t)

	rec := f.mustCreateRecord(t)
	if rec.DoctorID != f.doctor.ID {
		t.Errorf("record doctor = %s, want acting doctor %s", rec.DoctorID, f.doctor.ID)
	}
	if rec.PatientID != f.patientID {
		t.Errorf("record patient = %s, want %s", rec.PatientID, f.patientID)
	}
}

func TestRecordOps_UnassignedDoctorDenied(t *testing.T) {
	f := newRecordFixture(t)
	rec := f.mustCreateRecord(t)

	other := &domain.User{Email: "other@clinic.example", Role: domain.RoleDoctor, IsActive: true}
	if err := f.users.Create(context.Background(), other); err != nil {
		t.Fatalf("seeding doctor: %v", err)
	}
	actor := Actor{ID: other.ID, Role: domain.RoleDoctor, IP: "127.0.0.1"}
	ctx := context.Background()
	diagnosis := "updated"

	ops := map[string]error{
		"create": func() error {
			_, err := f.svc.CreateRecord(ctx, &medicalrecord.CreateRecordCommand{PatientID: f.patientID, Diagnosis: "x"}, actor)
			return err
		}(),
		"list": func() error {
			_, err := f.svc.ListRecords(ctx, f.patientID, actor)
			return err
		}(),
		"update": func() error {
			_, err := f.svc.UpdateRecord(ctx, f.patientID, rec.ID, &medicalrecord.UpdateRecordCommand{Diagnosis: &diagnosis}, actor)
			return err
		}(),
		"delete": f.svc.DeleteRecord(ctx, f.patientID, rec.ID, actor),
	}

	for name, err := range ops {
		if !errors.Is(err, medicalrecord.ErrRecordAccessDenied) {
			t.Errorf("%s by unassigned doctor: got %v, want ErrRecordAccessDenied", name, err)
		}
	}
}

func TestRecordOps_NonDoctorDenied(t *testing.T) {
	f := newRecordFixture(t)

	actor := Actor{ID: uuid.New(), Role: domain.RolePatient, IP: "127.0.0.1"}
	_, err := f.svc.ListRecords(context.Background(), f.patientID, actor)
	if !errors.Is(err, medicalrecord.ErrRecordAccessDenied) {
		t.Fatalf("expected ErrRecordAccessDenied for non-doctor, got %v", err)
	}
}

func TestRecordOps_RevokedAssignmentDeniedImmediately(t *testing.T) {
	f := newRecordFixture(t)
	rec := f.mustCreateRecord(t)

	ctx := context.Background()
	if _, err := f.svc.ListRecords(ctx, f.patientID, f.doctorActor()); err != nil {
		t.Fatalf("list before revocation: %v", err)
	}

	if err := f.assignments.Delete(ctx, f.patientID, f.doctor.ID); err != nil {
		t.Fatalf("revoking assignment: %v", err)
	}

	if _, err := f.svc.ListRecords(ctx, f.patientID, f.doctorActor()); !errors.Is(err, medicalrecord.ErrRecordAccessDenied) {
		t.Fatalf("list after revocation: got %v, want ErrRecordAccessDenied", err)
	}
	if _, err := f.svc.GetRecord(ctx, f.patientID, rec.ID, f.doctorActor()); !errors.Is(err, medicalrecord.ErrRecordAccessDenied) {
		t.Fatalf("get after revocation: got %v, want ErrRecordAccessDenied", err)
	}
}

func TestUpdateRecord_PartialMerge(t *testing.T) {
	f := newRecordFixture(t)
	rec := f.mustCreateRecord(t)

	notes := "follow up in two weeks"
	updated, err := f.svc.UpdateRecord(context.Background(), f.patientID, rec.ID, &medicalrecord.UpdateRecordCommand{Notes: &notes}, f.doctorActor())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("notes = %q, want %q", updated.Notes, notes)
	}
	if updated.Diagnosis != "hypertension" || updated.Treatment != "lisinopril 10mg" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateRecord_MissingRecord(t *testing.T) {
	f := newRecordFixture(t)

	diagnosis := "x"
	_, err := f.svc.UpdateRecord(context.Background(), f.patientID, uuid.New(), &medicalrecord.UpdateRecordCommand{Diagnosis: &diagnosis}, f.doctorActor())
	if !errors.Is(err, medicalrecord.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	f := newRecordFixture(t)
	rec := f.mustCreateRecord(t)

	ctx := context.Background()
	if err := f.svc.DeleteRecord(ctx, f.patientID, rec.ID, f.doctorActor()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.DeleteRecord(ctx, f.patientID, rec.ID, f.doctorActor()); !errors.Is(err, medicalrecord.ErrRecordNotFound) {
		t.Fatalf("second delete: got %v, want ErrRecordNotFound", err)
	}
}
