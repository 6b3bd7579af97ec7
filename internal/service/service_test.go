package service

import (
	"context"
	"sync"

	"github.com/clinicore/clinicore/internal/domain"
	"github.com/clinicore/clinicore/internal/domain/assignment"
	"github.com/clinicore/clinicore/internal/domain/medicalrecord"
	"github.com/clinicore/clinicore/internal/domain/patient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// In-memory fakes for the repository interfaces
// ---------------------------------------------------------------------------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyUsed
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByIDAndRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Role != role {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateLoginAttempt(_ context.Context, _ uuid.UUID, _ bool) error {
	return nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*patient.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*patient.Patient
	for _, p := range r.patients {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePatientRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*patient.Patient
	for _, id := range ids {
		if p, ok := r.patients[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePatientRepo) Update(_ context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	if cmd.FirstName != nil {
		p.FirstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		p.LastName = *cmd.LastName
	}
	if cmd.DateOfBirth != nil {
		p.DateOfBirth = cmd.DateOfBirth
	}
	if cmd.Gender != nil {
		p.Gender = *cmd.Gender
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.Email != nil {
		p.Email = *cmd.Email
	}
	if cmd.Address != nil {
		p.Address = *cmd.Address
	}
	if cmd.Notes != nil {
		p.Notes = *cmd.Notes
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return patient.ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}

type pairKey struct {
	patientID uuid.UUID
	doctorID  uuid.UUID
}

type fakeAssignmentRepo struct {
	mu   sync.Mutex
	rows map[pairKey]*assignment.PatientDoctor
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{rows: make(map[pairKey]*assignment.PatientDoctor)}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *assignment.PatientDoctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{a.PatientID, a.DoctorID}
	if _, ok := r.rows[key]; ok {
		return assignment.ErrAlreadyAssigned
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.rows[key] = a
	return nil
}

func (r *fakeAssignmentRepo) Exists(_ context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[pairKey{patientID, doctorID}]
	return ok, nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, patientID, doctorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{patientID, doctorID}
	if _, ok := r.rows[key]; !ok {
		return assignment.ErrAssignmentNotFound
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeAssignmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*assignment.PatientDoctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*assignment.PatientDoctor
	for key, a := range r.rows {
		if key.patientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*assignment.PatientDoctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*assignment.PatientDoctor
	for key, a := range r.rows {
		if key.doctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*medicalrecord.MedicalRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uuid.UUID]*medicalrecord.MedicalRecord)}
}

func (r *fakeRecordRepo) Create(_ context.Context, rec *medicalrecord.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) GetByID(_ context.Context, patientID, recordID uuid.UUID) (*medicalrecord.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok || rec.PatientID != patientID {
		return nil, medicalrecord.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*medicalrecord.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*medicalrecord.MedicalRecord
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) Update(_ context.Context, patientID, recordID uuid.UUID, cmd *medicalrecord.UpdateRecordCommand) (*medicalrecord.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok || rec.PatientID != patientID {
		return nil, medicalrecord.ErrRecordNotFound
	}
	if cmd.Diagnosis != nil {
		rec.Diagnosis = *cmd.Diagnosis
	}
	if cmd.Treatment != nil {
		rec.Treatment = *cmd.Treatment
	}
	if cmd.Notes != nil {
		rec.Notes = *cmd.Notes
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) Delete(_ context.Context, patientID, recordID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok || rec.PatientID != patientID {
		return medicalrecord.ErrRecordNotFound
	}
	delete(r.records, recordID)
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]string
	offline  bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{messages: make(map[uuid.UUID][]string)}
}

func (n *fakeNotifier) Send(userID uuid.UUID, message string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.offline {
		return false
	}
	n.messages[userID] = append(n.messages[userID], message)
	return true
}

func (n *fakeNotifier) messagesFor(userID uuid.UUID) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.messages[userID]
}

func newTestAuditService() *AuditService {
	return NewAuditService(&fakeAuditRepo{}, nil, zap.NewNop())
}
