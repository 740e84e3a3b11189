package instructor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/courseroom/backend/internal/app/datatransfer"
	"github.com/courseroom/backend/internal/app/models"
	"github.com/courseroom/backend/internal/pkg/apperrors"
	"github.com/courseroom/backend/internal/pkg/persistwait"
)

// fakeEngine simulates an eventually consistent storage backend: writes land
// in committed state immediately, but Selects serve a separately published
// view. Flush publishes committed state after `lag` further Selects, so a
// lag of N means the first N-1 post-flush reads are stale.
type fakeEngine struct {
	nextID    int64
	committed []models.InstructorRecord
	visible   []models.InstructorRecord
	lag       int
	countdown int
	selects   int
}

func newFakeEngine(lag int) *fakeEngine {
	return &fakeEngine{lag: lag}
}

func (e *fakeEngine) publish() {
	e.visible = append([]models.InstructorRecord(nil), e.committed...)
}

func matches(rec *models.InstructorRecord, f Filter) bool {
	if f.CourseID != "" && rec.CourseID != f.CourseID {
		return false
	}
	if f.GoogleID != "" && rec.GoogleID != f.GoogleID {
		return false
	}
	if f.Email != "" && rec.Email != f.Email {
		return false
	}
	return true
}

func (e *fakeEngine) Select(ctx context.Context, f Filter) ([]models.InstructorRecord, error) {
	e.selects++
	if e.countdown > 0 {
		e.countdown--
		if e.countdown == 0 {
			e.publish()
		}
	}
	var out []models.InstructorRecord
	for i := range e.visible {
		if matches(&e.visible[i], f) {
			out = append(out, e.visible[i])
		}
	}
	return out, nil
}

func (e *fakeEngine) Insert(ctx context.Context, rec *models.InstructorRecord) error {
	e.nextID++
	rec.ID = e.nextID
	e.committed = append(e.committed, *rec)
	return nil
}

func (e *fakeEngine) Update(ctx context.Context, rec *models.InstructorRecord) error {
	for i := range e.committed {
		if e.committed[i].CourseID == rec.CourseID && e.committed[i].GoogleID == rec.GoogleID {
			e.committed[i].Name = rec.Name
			e.committed[i].Email = rec.Email
		}
	}
	return nil
}

func (e *fakeEngine) Delete(ctx context.Context, courseID, googleID string) error {
	return e.DeleteAll(ctx, Filter{CourseID: courseID, GoogleID: googleID})
}

func (e *fakeEngine) DeleteAll(ctx context.Context, f Filter) error {
	if f.IsEmpty() {
		return errors.New("unfiltered delete")
	}
	var kept []models.InstructorRecord
	for i := range e.committed {
		if !matches(&e.committed[i], f) {
			kept = append(kept, e.committed[i])
		}
	}
	e.committed = kept
	return nil
}

func (e *fakeEngine) Flush(ctx context.Context) error {
	if e.lag <= 0 {
		e.publish()
		return nil
	}
	e.countdown = e.lag
	return nil
}

// noSleepClock records poll sleeps without actually waiting
type noSleepClock struct {
	sleeps int
}

func (c *noSleepClock) Sleep(d time.Duration) { c.sleeps++ }

func newTestStore(lag int) (*Store, *fakeEngine) {
	engine := newFakeEngine(lag)
	s := NewStore(engine, zerolog.Nop())
	s.waiter = &persistwait.Waiter{
		Interval:    time.Millisecond,
		MaxAttempts: 10,
		Clock:       &noSleepClock{},
	}
	return s, engine
}

func validAttrs(courseID, googleID, email, name string) *datatransfer.InstructorAttributes {
	return &datatransfer.InstructorAttributes{
		GoogleID: googleID,
		CourseID: courseID,
		Email:    email,
		Name:     name,
	}
}

func mustCreate(t *testing.T, s *Store, attrs *datatransfer.InstructorAttributes) {
	t.Helper()
	if err := s.CreateInstructor(context.Background(), attrs); err != nil {
		t.Fatalf("CreateInstructor(%s/%s) failed: %v", attrs.CourseID, attrs.GoogleID, err)
	}
}

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", substr)
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic value, got %T", r)
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("panic message %q does not contain %q", msg, substr)
		}
	}()
	fn()
}

func TestCreateAndGetInstructorForGoogleID(t *testing.T) {
	s, _ := newTestStore(0)
	attrs := validAttrs("CS101", "g1", "a@example.com", "Alice")
	mustCreate(t, s, attrs)

	got, err := s.GetInstructorForGoogleID(context.Background(), "CS101", "g1")
	if err != nil {
		t.Fatalf("GetInstructorForGoogleID failed: %v", err)
	}
	if got == nil {
		t.Fatal("created instructor not found")
	}
	if *got != *attrs {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, attrs)
	}
}

func TestCreateInstructorWaitsForVisibility(t *testing.T) {
	s, engine := newTestStore(3)

	var timedOut bool
	s.onTimeout = func(string) { timedOut = true }

	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))

	if timedOut {
		t.Error("visibility confirmed within budget but timeout signal fired")
	}
	if len(engine.visible) != 1 {
		t.Errorf("CreateInstructor returned before the write became visible: %d visible records", len(engine.visible))
	}
}

func TestCreateInstructorTimeoutIsSilent(t *testing.T) {
	s, engine := newTestStore(100) // never becomes visible within the budget
	s.waiter.MaxAttempts = 3

	var timedOutOp string
	s.onTimeout = func(op string) { timedOutOp = op }

	if err := s.CreateInstructor(context.Background(), validAttrs("CS101", "g1", "a@example.com", "Alice")); err != nil {
		t.Fatalf("CreateInstructor must not fail on visibility timeout, got: %v", err)
	}
	if timedOutOp != "createInstructor" {
		t.Errorf("timeout signal = %q, want createInstructor", timedOutOp)
	}
	if len(engine.committed) != 1 {
		t.Errorf("write should still be durable after timeout, committed = %d", len(engine.committed))
	}
}

func TestCreateInstructorDuplicateFails(t *testing.T) {
	s, engine := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))

	err := s.CreateInstructor(context.Background(), validAttrs("CS101", "g1", "other@example.com", "Impostor"))
	if !errors.Is(err, apperrors.ErrEntityAlreadyExists) {
		t.Fatalf("expected ErrEntityAlreadyExists, got: %v", err)
	}

	var conflict *apperrors.EntityAlreadyExistsError
	if !errors.As(err, &conflict) {
		t.Fatal("error does not carry the conflicting key")
	}
	if conflict.GoogleID != "g1" || conflict.CourseID != "CS101" {
		t.Errorf("conflict key = %s/%s, want CS101/g1", conflict.CourseID, conflict.GoogleID)
	}

	if len(engine.committed) != 1 {
		t.Errorf("failed create must leave the store unchanged, committed = %d", len(engine.committed))
	}
	if engine.committed[0].Email != "a@example.com" {
		t.Errorf("original record mutated by failed create: %+v", engine.committed[0])
	}
}

func TestCreateInstructorContractViolationsPanic(t *testing.T) {
	s, _ := newTestStore(0)

	expectPanic(t, "non-nil instructor attributes", func() {
		_ = s.CreateInstructor(context.Background(), nil)
	})
	expectPanic(t, "invalid instructor attributes", func() {
		_ = s.CreateInstructor(context.Background(), validAttrs("CS101", "g1", "not-an-email", "Alice"))
	})
}

func TestGetInstructorForEmail(t *testing.T) {
	s, _ := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))

	got, err := s.GetInstructorForEmail(context.Background(), "CS101", "a@example.com")
	if err != nil {
		t.Fatalf("GetInstructorForEmail failed: %v", err)
	}
	if got == nil || got.GoogleID != "g1" {
		t.Errorf("GetInstructorForEmail = %+v, want googleId g1", got)
	}
}

func TestGetInstructorMissReturnsNil(t *testing.T) {
	s, _ := newTestStore(0)

	byGoogle, err := s.GetInstructorForGoogleID(context.Background(), "CS101", "ghost")
	if err != nil || byGoogle != nil {
		t.Errorf("miss by google id should be (nil, nil), got (%+v, %v)", byGoogle, err)
	}

	byEmail, err := s.GetInstructorForEmail(context.Background(), "CS101", "ghost@example.com")
	if err != nil || byEmail != nil {
		t.Errorf("miss by email should be (nil, nil), got (%+v, %v)", byEmail, err)
	}
}

func TestGetInstructorEmptyKeyPanics(t *testing.T) {
	s, _ := newTestStore(0)

	expectPanic(t, "non-empty value expected", func() {
		_, _ = s.GetInstructorForGoogleID(context.Background(), "", "g1")
	})
	expectPanic(t, "non-empty value expected", func() {
		_, _ = s.GetInstructorForEmail(context.Background(), "CS101", "  ")
	})
	expectPanic(t, "non-empty value expected", func() {
		_, _ = s.GetInstructorsForGoogleID(context.Background(), "")
	})
	expectPanic(t, "non-empty value expected", func() {
		_, _ = s.GetInstructorsForCourse(context.Background(), "")
	})
}

func TestGetInstructorsForGoogleID(t *testing.T) {
	s, _ := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))
	mustCreate(t, s, validAttrs("CS102", "g1", "a@example.com", "Alice"))
	mustCreate(t, s, validAttrs("CS101", "g2", "b@example.com", "Bob"))

	list, err := s.GetInstructorsForGoogleID(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GetInstructorsForGoogleID failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 roles for g1, got %d", len(list))
	}
	for _, a := range list {
		if a.GoogleID != "g1" {
			t.Errorf("unexpected record in result: %+v", a)
		}
	}
}

func TestGetInstructorsEmptyResultIsNeverNil(t *testing.T) {
	s, _ := newTestStore(0)

	byCourse, err := s.GetInstructorsForCourse(context.Background(), "EMPTY101")
	if err != nil {
		t.Fatalf("GetInstructorsForCourse failed: %v", err)
	}
	if byCourse == nil || len(byCourse) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", byCourse)
	}

	byGoogle, err := s.GetInstructorsForGoogleID(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetInstructorsForGoogleID failed: %v", err)
	}
	if byGoogle == nil || len(byGoogle) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", byGoogle)
	}
}

func TestGetAllInstructors(t *testing.T) {
	s, _ := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))
	mustCreate(t, s, validAttrs("MA201", "g2", "b@example.com", "Bob"))

	all, err := s.GetAllInstructors(context.Background())
	if err != nil {
		t.Fatalf("GetAllInstructors failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 instructors, got %d", len(all))
	}
}

func TestUpdateInstructorChangesOnlyNameAndEmail(t *testing.T) {
	s, engine := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))
	storedID := engine.committed[0].ID

	err := s.UpdateInstructor(context.Background(), validAttrs("CS101", "g1", "alicia@example.com", "Alicia"))
	if err != nil {
		t.Fatalf("UpdateInstructor failed: %v", err)
	}

	rec := engine.committed[0]
	if rec.ID != storedID || rec.CourseID != "CS101" || rec.GoogleID != "g1" {
		t.Errorf("update rewrote immutable fields: %+v", rec)
	}
	if rec.Name != "Alicia" || rec.Email != "alicia@example.com" {
		t.Errorf("update did not apply name/email: %+v", rec)
	}
}

func TestUpdateNonExistentInstructorPanics(t *testing.T) {
	s, _ := newTestStore(0)

	expectPanic(t, "non-existent instructor", func() {
		_ = s.UpdateInstructor(context.Background(), validAttrs("CS101", "ghost", "g@example.com", "Ghost"))
	})
}

func TestDeleteInstructor(t *testing.T) {
	s, engine := newTestStore(2)

	var timedOut bool
	s.onTimeout = func(string) { timedOut = true }

	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))
	if err := s.DeleteInstructor(context.Background(), "CS101", "g1"); err != nil {
		t.Fatalf("DeleteInstructor failed: %v", err)
	}
	if timedOut {
		t.Error("delete visibility confirmed within budget but timeout signal fired")
	}

	got, err := s.GetInstructorForGoogleID(context.Background(), "CS101", "g1")
	if err != nil {
		t.Fatalf("lookup after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("instructor still visible after delete: %+v", got)
	}
	if len(engine.committed) != 0 {
		t.Errorf("record still durable after delete: %d", len(engine.committed))
	}
}

func TestDeleteMissingInstructorIsNoOp(t *testing.T) {
	s, engine := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))
	selectsBefore := engine.selects

	if err := s.DeleteInstructor(context.Background(), "CS101", "ghost"); err != nil {
		t.Fatalf("deleting a missing instructor must be a silent no-op, got: %v", err)
	}
	if len(engine.committed) != 1 {
		t.Errorf("no-op delete changed the store: committed = %d", len(engine.committed))
	}
	// only the existence lookup should have run, no visibility polling
	if engine.selects != selectsBefore+1 {
		t.Errorf("no-op delete ran %d selects, want 1", engine.selects-selectsBefore)
	}
}

func TestDeleteInstructorsForCourse(t *testing.T) {
	s, engine := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))
	mustCreate(t, s, validAttrs("CS101", "g2", "b@example.com", "Bob"))
	mustCreate(t, s, validAttrs("MA201", "g1", "a@example.com", "Alice"))

	if err := s.DeleteInstructorsForCourse(context.Background(), "CS101"); err != nil {
		t.Fatalf("DeleteInstructorsForCourse failed: %v", err)
	}
	if len(engine.committed) != 1 || engine.committed[0].CourseID != "MA201" {
		t.Errorf("bulk delete by course left wrong records: %+v", engine.committed)
	}

	// absence of matches is a silent no-op
	if err := s.DeleteInstructorsForCourse(context.Background(), "CS101"); err != nil {
		t.Errorf("repeat bulk delete should be a no-op, got: %v", err)
	}

	expectPanic(t, "non-empty value expected", func() {
		_ = s.DeleteInstructorsForCourse(context.Background(), "")
	})
}

func TestDeleteInstructorsForGoogleID(t *testing.T) {
	s, engine := newTestStore(0)
	mustCreate(t, s, validAttrs("CS101", "g1", "a@example.com", "Alice"))
	mustCreate(t, s, validAttrs("MA201", "g1", "a@example.com", "Alice"))
	mustCreate(t, s, validAttrs("CS101", "g2", "b@example.com", "Bob"))

	if err := s.DeleteInstructorsForGoogleID(context.Background(), "g1"); err != nil {
		t.Fatalf("DeleteInstructorsForGoogleID failed: %v", err)
	}
	if len(engine.committed) != 1 || engine.committed[0].GoogleID != "g2" {
		t.Errorf("bulk delete by google id left wrong records: %+v", engine.committed)
	}

	expectPanic(t, "non-empty value expected", func() {
		_ = s.DeleteInstructorsForGoogleID(context.Background(), "")
	})
}

// Full lifecycle: create, fetch by email, rename, verify, delete, verify gone.
func TestInstructorLifecycle(t *testing.T) {
	s, _ := newTestStore(1)
	ctx := context.Background()

	mustCreate(t, s, validAttrs("CS101", "g1", "a@x.com", "Alice"))

	byEmail, err := s.GetInstructorForEmail(ctx, "CS101", "a@x.com")
	if err != nil || byEmail == nil {
		t.Fatalf("fetch by email after create = (%+v, %v)", byEmail, err)
	}
	if byEmail.Name != "Alice" {
		t.Errorf("fetched name = %q, want Alice", byEmail.Name)
	}

	if err := s.UpdateInstructor(ctx, validAttrs("CS101", "g1", "a@x.com", "Alicia")); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	renamed, err := s.GetInstructorForGoogleID(ctx, "CS101", "g1")
	if err != nil || renamed == nil {
		t.Fatalf("fetch after rename = (%+v, %v)", renamed, err)
	}
	if renamed.Name != "Alicia" || renamed.Email != "a@x.com" {
		t.Errorf("rename applied wrong fields: %+v", renamed)
	}

	if err := s.DeleteInstructor(ctx, "CS101", "g1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	gone, err := s.GetInstructorForEmail(ctx, "CS101", "a@x.com")
	if err != nil {
		t.Fatalf("fetch after delete failed: %v", err)
	}
	if gone != nil {
		t.Errorf("instructor still present after delete: %+v", gone)
	}
}
