package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// maxSelected caps how many students one draw returns.
const maxSelected = 3

// SelectedStudent is a drawn student enriched with roster fields.
// Missing roster data degrades to empty strings.
type SelectedStudent struct {
	StudentID   string     `json:"studentId"`
	UserName    string     `json:"userName"`
	CheckInTime *time.Time `json:"checkInTime,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Department  string     `json:"department"`
	Class       string     `json:"class"`
	Email       string     `json:"email"`
}

type SelectionResult struct {
	Selected      []SelectedStudent `json:"selected"`
	TotalPresent  int               `json:"totalPresent"`
	TotalSelected int               `json:"totalSelected"`
	SessionCount  int               `json:"sessionCount"`
	Date          string            `json:"date"`
}

// RandomSelection draws up to three distinct present students from the
// ended sessions of a course on one calendar day (today when targetDate
// is zero). Present students are unioned across sessions with the most
// recent session winning duplicates, then shuffled with Fisher–Yates so
// every student is equally likely.
func (e *Engine) RandomSelection(ctx context.Context, courseID string, targetDate time.Time) Result {
	if targetDate.IsZero() {
		targetDate = time.Now()
	}
	from, to := dayWindow(targetDate)

	sessions, err := e.sessions.ListEndedInWindow(ctx, courseID, from, to)
	if err != nil {
		return internalError("random selection", err)
	}
	if len(sessions) == 0 {
		return fail(404, "No ended attendance sessions for this day")
	}

	// Union across sessions, first occurrence wins; sessions arrive
	// newest-first, so the latest check-in time and notes survive.
	seen := make(map[string]bool)
	var pool []models.SessionEntry
	for _, session := range sessions {
		for _, entry := range session.AttendedStudents {
			if seen[entry.StudentID] {
				continue
			}
			seen[entry.StudentID] = true
			pool = append(pool, entry)
		}
	}
	if len(pool) == 0 {
		return fail(404, "No attended students to select from")
	}

	shuffled := make([]models.SessionEntry, len(pool))
	copy(shuffled, pool)
	for i := len(shuffled) - 1; i >= 1; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	n := maxSelected
	if len(shuffled) < n {
		n = len(shuffled)
	}

	selected := make([]SelectedStudent, 0, n)
	for _, entry := range shuffled[:n] {
		sel := SelectedStudent{
			StudentID:   entry.StudentID,
			UserName:    entry.UserName,
			CheckInTime: entry.CheckInTime,
			Notes:       entry.Notes,
		}
		// Roster enrichment is best-effort; a missing or failing
		// lookup leaves the fields empty.
		if student, err := e.students.FindByID(ctx, entry.StudentID); err == nil && student != nil {
			sel.Department = student.Department
			sel.Class = student.Class
			sel.Email = student.Email
		}
		selected = append(selected, sel)
	}

	return ok("Random selection complete", SelectionResult{
		Selected:      selected,
		TotalPresent:  len(pool),
		TotalSelected: len(selected),
		SessionCount:  len(sessions),
		Date:          from.Format("2006-01-02"),
	})
}
