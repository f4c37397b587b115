package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

func TestWriteSessionsCSV(t *testing.T) {
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	checkIn := start.Add(5 * time.Minute)

	sessions := []models.AttendanceSession{
		{
			CourseName:  "Operating Systems",
			SessionCode: "123456",
			StartTime:   start,
			AttendedStudents: []models.SessionEntry{
				{StudentID: "S001", UserName: "Alice", CheckInTime: &checkIn},
			},
			AbsentStudents: []models.SessionEntry{
				{StudentID: "S002", UserName: "Bob"},
			},
			ExcusedStudents: []models.SessionEntry{
				{StudentID: "S003", UserName: "Carol", Notes: "sick"},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteSessionsCSV(&buf, sessions); err != nil {
		t.Fatalf("WriteSessionsCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(header, ",") {
		t.Fatalf("header row = %v", rows[0])
	}
	if rows[1][3] != models.StatusPresent || rows[1][4] != "S001" || rows[1][6] == "" {
		t.Fatalf("present row = %v", rows[1])
	}
	if rows[2][3] != models.StatusAbsent || rows[2][6] != "" {
		t.Fatalf("absent row = %v", rows[2])
	}
	if rows[3][3] != models.StatusExcused || rows[3][7] != "sick" {
		t.Fatalf("excused row = %v", rows[3])
	}
}
