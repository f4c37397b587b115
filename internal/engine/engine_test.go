package engine

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

/* ---------- in-memory fakes ---------- */

type fakeCourseStore struct {
	courses map[string]*models.Course
}

func (f *fakeCourseStore) FindByID(_ context.Context, id string) (*models.Course, error) {
	return f.courses[id], nil
}

type fakeStudentStore struct {
	students map[string]*models.Student
}

func (f *fakeStudentStore) FindByID(_ context.Context, id string) (*models.Student, error) {
	return f.students[id], nil
}

type fakeRosterStore struct {
	byCourse map[string][]models.Student
}

func (f *fakeRosterStore) ListStudents(_ context.Context, courseID string) ([]models.Student, error) {
	return f.byCourse[courseID], nil
}

type fakeSessionStore struct {
	sessions []*models.AttendanceSession
}

func (f *fakeSessionStore) Create(_ context.Context, s *models.AttendanceSession) error {
	s.ID = primitive.NewObjectID()
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeSessionStore) FindByID(_ context.Context, id string) (*models.AttendanceSession, error) {
	for _, s := range f.sessions {
		if s.ID.Hex() == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) FindActiveByCode(_ context.Context, code string) (*models.AttendanceSession, error) {
	var found *models.AttendanceSession
	for _, s := range f.sessions {
		if s.SessionCode != code || s.Status != models.SessionStatusActive {
			continue
		}
		if found == nil || s.StartTime.After(found.StartTime) {
			found = s
		}
	}
	return found, nil
}

func (f *fakeSessionStore) End(ctx context.Context, id string, endTime time.Time) (*models.AttendanceSession, error) {
	s, _ := f.FindByID(ctx, id)
	if s == nil {
		return nil, nil
	}
	s.Status = models.SessionStatusEnded
	s.EndTime = &endTime
	s.UpdatedAt = endTime
	return s, nil
}

func (f *fakeSessionStore) Save(ctx context.Context, session *models.AttendanceSession) error {
	for i, s := range f.sessions {
		if s.ID == session.ID {
			f.sessions[i] = session
			return nil
		}
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionStore) ListByStatus(_ context.Context, status string) ([]models.AttendanceSession, error) {
	var out []models.AttendanceSession
	for _, s := range f.sessions {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (f *fakeSessionStore) ListEndedInWindow(_ context.Context, courseID string, from, to time.Time) ([]models.AttendanceSession, error) {
	var out []models.AttendanceSession
	for _, s := range f.sessions {
		if s.CourseID.Hex() != courseID || s.Status != models.SessionStatusEnded {
			continue
		}
		if s.StartTime.Before(from) || !s.StartTime.Before(to) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

type fakeRecordStore struct {
	records []*models.AttendanceRecord
}

func (f *fakeRecordStore) Insert(_ context.Context, r *models.AttendanceRecord) error {
	r.ID = primitive.NewObjectID()
	f.records = append(f.records, r)
	return nil
}

func (f *fakeRecordStore) FindInWindow(_ context.Context, courseID primitive.ObjectID, studentID string, from, to time.Time) (*models.AttendanceRecord, error) {
	for _, r := range f.records {
		if r.CourseID != courseID || r.StudentID != studentID {
			continue
		}
		if r.AttendanceDate.Before(from) || !r.AttendanceDate.Before(to) {
			continue
		}
		return r, nil
	}
	return nil, nil
}

func (f *fakeRecordStore) List(_ context.Context, studentID, courseID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if r.StudentID != studentID {
			continue
		}
		if courseID != "" && r.CourseID.Hex() != courseID {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendanceDate.After(out[j].AttendanceDate) })
	return out, nil
}

func (f *fakeRecordStore) CountByStatus(_ context.Context, courseID primitive.ObjectID, from, to *time.Time) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, r := range f.records {
		if r.CourseID != courseID {
			continue
		}
		if from != nil && to != nil {
			if r.AttendanceDate.Before(*from) || !r.AttendanceDate.Before(*to) {
				continue
			}
		}
		counts[r.Status]++
	}
	return counts, nil
}

/* ---------- harness ---------- */

type testEnv struct {
	engine   *Engine
	courses  *fakeCourseStore
	students *fakeStudentStore
	roster   *fakeRosterStore
	sessions *fakeSessionStore
	records  *fakeRecordStore
	courseID string
}

func newTestEnv() *testEnv {
	courseOID := primitive.NewObjectID()
	course := &models.Course{ID: courseOID, CourseName: "Operating Systems"}

	env := &testEnv{
		courses:  &fakeCourseStore{courses: map[string]*models.Course{courseOID.Hex(): course}},
		students: &fakeStudentStore{students: map[string]*models.Student{}},
		roster:   &fakeRosterStore{byCourse: map[string][]models.Student{}},
		sessions: &fakeSessionStore{},
		records:  &fakeRecordStore{},
		courseID: courseOID.Hex(),
	}
	env.engine = New(env.courses, env.students, env.roster, env.sessions, env.records)
	return env
}

func (env *testEnv) addStudent(id, name string) {
	env.students.students[id] = &models.Student{
		StudentID:  id,
		Name:       name,
		Department: "CS",
		Class:      "A",
		Email:      id + "@school.edu",
	}
}

func (env *testEnv) startSession(t *testing.T, mode string) *models.AttendanceSession {
	t.Helper()
	res := env.engine.StartSession(context.Background(), env.courseID, time.Now(), mode)
	if res.Code != 200 {
		t.Fatalf("StartSession code = %d (%s), want 200", res.Code, res.Message)
	}
	return res.Body.(*models.AttendanceSession)
}

func listIDs(entries []models.SessionEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.StudentID)
	}
	return ids
}

/* ---------- session lifecycle ---------- */

func TestStartSessionCodeMode(t *testing.T) {
	env := newTestEnv()
	session := env.startSession(t, models.AttendanceModeCode)

	if !regexp.MustCompile(`^\d{6}$`).MatchString(session.SessionCode) {
		t.Fatalf("session code %q is not a 6-digit string", session.SessionCode)
	}
	n, _ := strconv.Atoi(session.SessionCode)
	if n < 100000 || n > 999999 {
		t.Fatalf("session code %d out of range", n)
	}
	if session.Status != models.SessionStatusActive {
		t.Fatalf("status = %q, want active", session.Status)
	}
	if len(session.AttendedStudents) != 0 || len(session.AbsentStudents) != 0 || len(session.ExcusedStudents) != 0 {
		t.Fatal("new session should start with empty lists")
	}
	if session.CourseName != "Operating Systems" {
		t.Fatalf("course name snapshot = %q", session.CourseName)
	}
}

func TestStartSessionManualMode(t *testing.T) {
	env := newTestEnv()
	session := env.startSession(t, models.AttendanceModeManual)

	if !strings.HasPrefix(session.SessionCode, models.ManualCodePrefix) {
		t.Fatalf("manual session code %q lacks prefix", session.SessionCode)
	}
	if _, err := strconv.ParseInt(strings.TrimPrefix(session.SessionCode, models.ManualCodePrefix), 10, 64); err != nil {
		t.Fatalf("manual code suffix is not a timestamp: %v", err)
	}
}

func TestStartSessionUnknownCourse(t *testing.T) {
	env := newTestEnv()
	res := env.engine.StartSession(context.Background(), primitive.NewObjectID().Hex(), time.Now(), models.AttendanceModeCode)
	if res.Code != 404 {
		t.Fatalf("code = %d, want 404", res.Code)
	}
}

func TestEndSessionIsTerminalButReenterable(t *testing.T) {
	env := newTestEnv()
	session := env.startSession(t, models.AttendanceModeCode)

	res := env.engine.EndSession(context.Background(), session.ID.Hex())
	if res.Code != 200 {
		t.Fatalf("EndSession code = %d", res.Code)
	}
	ended := res.Body.(*models.AttendanceSession)
	if ended.Status != models.SessionStatusEnded || ended.EndTime == nil {
		t.Fatal("session not marked ended")
	}
	first := *ended.EndTime

	// Re-ending refreshes endTime and never reopens.
	res = env.engine.EndSession(context.Background(), session.ID.Hex())
	if res.Code != 200 {
		t.Fatalf("second EndSession code = %d", res.Code)
	}
	again := res.Body.(*models.AttendanceSession)
	if again.Status != models.SessionStatusEnded {
		t.Fatal("session reopened")
	}
	if again.EndTime.Before(first) {
		t.Fatal("endTime moved backwards")
	}

	if res := env.engine.EndSession(context.Background(), primitive.NewObjectID().Hex()); res.Code != 404 {
		t.Fatalf("unknown session code = %d, want 404", res.Code)
	}
}

/* ---------- check-in ---------- */

func TestCheckInOncePerDay(t *testing.T) {
	env := newTestEnv()
	session := env.startSession(t, models.AttendanceModeCode)

	res := env.engine.CheckIn(context.Background(), "S001", session.SessionCode)
	if res.Code != 200 {
		t.Fatalf("first check-in code = %d (%s)", res.Code, res.Message)
	}
	record := res.Body.(*models.AttendanceRecord)
	if record.Status != models.StatusPresent {
		t.Fatalf("record status = %q, want present", record.Status)
	}
	if !record.AttendanceDate.Equal(session.StartTime) {
		t.Fatal("record attendanceDate should snapshot the session start time")
	}

	res = env.engine.CheckIn(context.Background(), "S001", session.SessionCode)
	if res.Code != 400 {
		t.Fatalf("duplicate check-in code = %d, want 400", res.Code)
	}

	// Another student is unaffected.
	if res := env.engine.CheckIn(context.Background(), "S002", session.SessionCode); res.Code != 200 {
		t.Fatalf("second student check-in code = %d", res.Code)
	}
}

func TestCheckInInvalidOrEndedCode(t *testing.T) {
	env := newTestEnv()
	session := env.startSession(t, models.AttendanceModeCode)

	if res := env.engine.CheckIn(context.Background(), "S001", "000000"); res.Code != 400 {
		t.Fatalf("wrong code = %d, want 400", res.Code)
	}

	env.engine.EndSession(context.Background(), session.ID.Hex())
	if res := env.engine.CheckIn(context.Background(), "S001", session.SessionCode); res.Code != 400 {
		t.Fatalf("ended session code = %d, want 400", res.Code)
	}
}

/* ---------- manual marking ---------- */

func TestManualAttendanceReassignment(t *testing.T) {
	env := newTestEnv()
	env.addStudent("S001", "Alice")
	session := env.startSession(t, models.AttendanceModeManual)
	ctx := context.Background()

	if res := env.engine.ManualAttendance(ctx, session.ID.Hex(), "S001", models.StatusPresent); res.Code != 200 {
		t.Fatalf("mark present code = %d", res.Code)
	}
	res := env.engine.ManualAttendance(ctx, session.ID.Hex(), "S001", models.StatusAbsent)
	if res.Code != 200 {
		t.Fatalf("mark absent code = %d", res.Code)
	}

	got := res.Body.(*models.AttendanceSession)
	if len(got.AttendedStudents) != 0 {
		t.Fatal("student still in attended list after re-mark")
	}
	if ids := listIDs(got.AbsentStudents); len(ids) != 1 || ids[0] != "S001" {
		t.Fatalf("absent list = %v, want [S001]", ids)
	}
	if got.AbsentStudents[0].CheckInTime != nil {
		t.Fatal("absent entry should carry no check-in time")
	}
}

func TestManualAttendanceNotFound(t *testing.T) {
	env := newTestEnv()
	env.addStudent("S001", "Alice")
	session := env.startSession(t, models.AttendanceModeManual)
	ctx := context.Background()

	if res := env.engine.ManualAttendance(ctx, primitive.NewObjectID().Hex(), "S001", models.StatusPresent); res.Code != 404 {
		t.Fatalf("unknown session code = %d, want 404", res.Code)
	}
	if res := env.engine.ManualAttendance(ctx, session.ID.Hex(), "ghost", models.StatusPresent); res.Code != 404 {
		t.Fatalf("unknown student code = %d, want 404", res.Code)
	}
	if res := env.engine.ManualAttendance(ctx, session.ID.Hex(), "S001", "excused"); res.Code != 400 {
		t.Fatalf("excused via manual marking code = %d, want 400", res.Code)
	}
}

func TestReMarkMovesStudentToEndOfList(t *testing.T) {
	env := newTestEnv()
	env.addStudent("S001", "Alice")
	env.addStudent("S002", "Bob")
	session := env.startSession(t, models.AttendanceModeManual)
	ctx := context.Background()

	env.engine.ManualAttendance(ctx, session.ID.Hex(), "S001", models.StatusPresent)
	env.engine.ManualAttendance(ctx, session.ID.Hex(), "S002", models.StatusPresent)
	res := env.engine.ManualAttendance(ctx, session.ID.Hex(), "S001", models.StatusPresent)

	got := res.Body.(*models.AttendanceSession)
	if ids := listIDs(got.AttendedStudents); len(ids) != 2 || ids[0] != "S002" || ids[1] != "S001" {
		t.Fatalf("attended order = %v, want [S002 S001]", ids)
	}
}

func TestUpdateAttendanceStatusExclusiveLists(t *testing.T) {
	env := newTestEnv()
	env.addStudent("S001", "Alice")
	session := env.startSession(t, models.AttendanceModeManual)
	ctx := context.Background()

	env.engine.ManualAttendance(ctx, session.ID.Hex(), "S001", models.StatusPresent)
	res := env.engine.UpdateAttendanceStatus(ctx, session.ID.Hex(), "S001", models.StatusExcused, "sick")
	if res.Code != 200 {
		t.Fatalf("update status code = %d (%s)", res.Code, res.Message)
	}

	got := res.Body.(*models.AttendanceSession)
	if len(got.AttendedStudents) != 0 || len(got.AbsentStudents) != 0 {
		t.Fatal("student appears in more than one list")
	}
	if len(got.ExcusedStudents) != 1 {
		t.Fatalf("excused list length = %d, want 1", len(got.ExcusedStudents))
	}
	if got.ExcusedStudents[0].Notes != "sick" {
		t.Fatalf("notes = %q, want sick", got.ExcusedStudents[0].Notes)
	}
}

/* ---------- stats ---------- */

func TestCourseStats(t *testing.T) {
	env := newTestEnv()
	session := env.startSession(t, models.AttendanceModeCode)
	ctx := context.Background()

	env.engine.CheckIn(ctx, "S001", session.SessionCode)
	env.engine.CheckIn(ctx, "S002", session.SessionCode)

	res := env.engine.CourseStats(ctx, env.courseID, "")
	if res.Code != 200 {
		t.Fatalf("stats code = %d", res.Code)
	}
	stats := res.Body.(StatsSummary)
	if stats.Total != 2 || stats.Present != 2 {
		t.Fatalf("stats = %+v, want total=2 present=2", stats)
	}
	if stats.Late != 0 {
		t.Fatalf("late = %d; nothing writes late", stats.Late)
	}

	// Restricting to the session's day yields the same records.
	res = env.engine.CourseStats(ctx, env.courseID, session.ID.Hex())
	if stats := res.Body.(StatsSummary); stats.Total != 2 {
		t.Fatalf("day-scoped total = %d, want 2", stats.Total)
	}

	if res := env.engine.CourseStats(ctx, "not-a-hex-id", ""); res.Code != 400 {
		t.Fatalf("bad course id code = %d, want 400", res.Code)
	}
}

/* ---------- random selection ---------- */

func TestRandomSelectionRequiresEndedSessions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if res := env.engine.RandomSelection(ctx, env.courseID, time.Time{}); res.Code != 404 {
		t.Fatalf("no sessions code = %d, want 404", res.Code)
	}

	session := env.startSession(t, models.AttendanceModeManual)
	if res := env.engine.RandomSelection(ctx, env.courseID, time.Time{}); res.Code != 404 {
		t.Fatalf("active-only code = %d, want 404", res.Code)
	}

	env.engine.EndSession(ctx, session.ID.Hex())
	if res := env.engine.RandomSelection(ctx, env.courseID, time.Time{}); res.Code != 404 {
		t.Fatalf("empty union code = %d, want 404", res.Code)
	}
}

func TestRandomSelectionBounds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	session := env.startSession(t, models.AttendanceModeManual)

	for _, id := range []string{"S001", "S002", "S003", "S004", "S005"} {
		env.addStudent(id, "Student "+id)
		env.engine.ManualAttendance(ctx, session.ID.Hex(), id, models.StatusPresent)
	}
	env.engine.EndSession(ctx, session.ID.Hex())

	for i := 0; i < 20; i++ {
		res := env.engine.RandomSelection(ctx, env.courseID, time.Time{})
		if res.Code != 200 {
			t.Fatalf("selection code = %d (%s)", res.Code, res.Message)
		}
		sel := res.Body.(SelectionResult)
		if len(sel.Selected) != 3 {
			t.Fatalf("selected %d students, want 3", len(sel.Selected))
		}
		seen := map[string]bool{}
		for _, s := range sel.Selected {
			if seen[s.StudentID] {
				t.Fatalf("duplicate student %s in selection", s.StudentID)
			}
			seen[s.StudentID] = true
			if s.Department != "CS" || s.Email == "" {
				t.Fatalf("roster enrichment missing for %s", s.StudentID)
			}
		}
		if sel.TotalPresent != 5 || sel.TotalSelected != 3 || sel.SessionCount != 1 {
			t.Fatalf("totals = %+v", sel)
		}
	}
}

func TestRandomSelectionSmallPoolAndDedup(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addStudent("S001", "Alice")
	env.addStudent("S002", "Bob")

	first := env.startSession(t, models.AttendanceModeManual)
	env.engine.ManualAttendance(ctx, first.ID.Hex(), "S001", models.StatusPresent)
	env.engine.EndSession(ctx, first.ID.Hex())

	second := env.startSession(t, models.AttendanceModeManual)
	// S001 attends both sessions; the union must keep one entry.
	env.engine.ManualAttendance(ctx, second.ID.Hex(), "S001", models.StatusPresent)
	env.engine.ManualAttendance(ctx, second.ID.Hex(), "S002", models.StatusPresent)
	env.engine.EndSession(ctx, second.ID.Hex())

	res := env.engine.RandomSelection(ctx, env.courseID, time.Time{})
	if res.Code != 200 {
		t.Fatalf("selection code = %d", res.Code)
	}
	sel := res.Body.(SelectionResult)
	if sel.TotalPresent != 2 {
		t.Fatalf("union size = %d, want 2 after dedup", sel.TotalPresent)
	}
	if len(sel.Selected) != 2 {
		t.Fatalf("selected %d, want the whole pool of 2", len(sel.Selected))
	}
	if sel.SessionCount != 2 {
		t.Fatalf("session count = %d, want 2", sel.SessionCount)
	}
}

/* ---------- listings ---------- */

func TestSessionListings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addStudent("S001", "Alice")

	first := env.startSession(t, models.AttendanceModeCode)
	env.engine.ManualAttendance(ctx, first.ID.Hex(), "S001", models.StatusPresent)
	env.engine.EndSession(ctx, first.ID.Hex())
	env.startSession(t, models.AttendanceModeCode)

	res := env.engine.ActiveSessions(ctx)
	active := res.Body.([]SessionSummary)
	if len(active) != 1 || active[0].Status != models.SessionStatusActive {
		t.Fatalf("active sessions = %d", len(active))
	}

	res = env.engine.AllSessions(ctx)
	all := res.Body.([]SessionSummary)
	if len(all) != 2 {
		t.Fatalf("all sessions = %d, want 2", len(all))
	}
	for _, s := range all {
		if s.ID == first.ID && s.AttendanceCount != 1 {
			t.Fatalf("attendanceCount = %d, want 1", s.AttendanceCount)
		}
	}
}

func TestCourseStudents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.roster.byCourse[env.courseID] = []models.Student{
		{StudentID: "S001", Name: "Alice"},
		{StudentID: "S002", Name: "Bob"},
	}

	res := env.engine.CourseStudents(ctx, env.courseID)
	if res.Code != 200 {
		t.Fatalf("course students code = %d", res.Code)
	}
	if students := res.Body.([]models.Student); len(students) != 2 {
		t.Fatalf("roster size = %d, want 2", len(students))
	}

	if res := env.engine.CourseStudents(ctx, primitive.NewObjectID().Hex()); res.Code != 404 {
		t.Fatalf("unknown course code = %d, want 404", res.Code)
	}
}

func TestStudentRecords(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	session := env.startSession(t, models.AttendanceModeCode)
	env.engine.CheckIn(ctx, "S001", session.SessionCode)

	res := env.engine.StudentRecords(ctx, "S001", "")
	if res.Code != 200 {
		t.Fatalf("records code = %d", res.Code)
	}
	records := res.Body.([]models.AttendanceRecord)
	if len(records) != 1 || records[0].StudentID != "S001" {
		t.Fatalf("records = %+v", records)
	}

	res = env.engine.StudentRecords(ctx, "S001", env.courseID)
	if records := res.Body.([]models.AttendanceRecord); len(records) != 1 {
		t.Fatalf("course-scoped records = %d, want 1", len(records))
	}
}
