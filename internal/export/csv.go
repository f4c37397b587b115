// Package export formats closed attendance sessions for download. It is
// a thin collaborator of the lifecycle engine and never touches storage.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

var header = []string{"course", "sessionCode", "sessionStart", "status", "studentId", "userName", "checkInTime", "notes"}

// WriteSessionsCSV renders one row per student mark across the given
// sessions, grouped by session in the order provided.
func WriteSessionsCSV(w io.Writer, sessions []models.AttendanceSession) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, session := range sessions {
		if err := writeList(cw, &session, models.StatusPresent, session.AttendedStudents); err != nil {
			return err
		}
		if err := writeList(cw, &session, models.StatusAbsent, session.AbsentStudents); err != nil {
			return err
		}
		if err := writeList(cw, &session, models.StatusExcused, session.ExcusedStudents); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeList(cw *csv.Writer, session *models.AttendanceSession, status string, entries []models.SessionEntry) error {
	for _, entry := range entries {
		checkIn := ""
		if entry.CheckInTime != nil {
			checkIn = entry.CheckInTime.Format(time.RFC3339)
		}
		row := []string{
			session.CourseName,
			session.SessionCode,
			session.StartTime.Format(time.RFC3339),
			status,
			entry.StudentID,
			entry.UserName,
			checkIn,
			entry.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
