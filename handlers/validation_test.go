package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudentPayload() studentPayload {
	return studentPayload{
		Code:      "STU-001",
		FirstName: "Somchai",
		LastName:  "Jaidee",
		BirthDate: "2012-05-14",
		Grade:     "7",
		Room:      "1",
		Phone:     "+66 81 234 5678",
		Status:    "active",
	}
}

func TestValidateStudentOK(t *testing.T) {
	p := validStudentPayload()
	p.normalize()
	assert.Nil(t, validateStudent(&p))
}

func TestValidateStudentErrors(t *testing.T) {
	p := validStudentPayload()
	p.Code = "bad code!"
	p.FirstName = ""
	p.BirthDate = "14-05-2012"
	p.Status = "enrolled"

	errs := validateStudent(&p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "code")
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "birth_date")
	assert.Contains(t, errs, "status")
	assert.NotContains(t, errs, "last_name")
}

func TestStudentNormalizeCollapsesSpaces(t *testing.T) {
	p := studentPayload{FirstName: "  Som   chai ", Code: " STU-001 "}
	p.normalize()
	assert.Equal(t, "Som chai", p.FirstName)
	assert.Equal(t, "STU-001", p.Code)
}

func TestValidateTimetableOK(t *testing.T) {
	p := timetablePayload{
		ClassID: 1, TeacherID: 2, Subject: "Math",
		DayOfWeek: 1, Period: 1, StartTime: "08:30", EndTime: "09:20",
	}
	assert.Nil(t, validateTimetable(&p))
}

func TestValidateTimetableErrors(t *testing.T) {
	p := timetablePayload{
		ClassID: 1, TeacherID: 2, Subject: "Math",
		DayOfWeek: 8, Period: 0, StartTime: "8am", EndTime: "09:20",
	}
	errs := validateTimetable(&p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "day_of_week")
	assert.Contains(t, errs, "period")
	assert.Contains(t, errs, "start_time")

	p = timetablePayload{
		ClassID: 1, TeacherID: 2, Subject: "Math",
		DayOfWeek: 1, Period: 1, StartTime: "10:00", EndTime: "09:00",
	}
	errs = validateTimetable(&p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "end_time")
}

func TestValidateMarkOK(t *testing.T) {
	p := markPayload{StudentID: 1, Subject: "Math", Term: "1/2026", Exam: "midterm", Score: 42, MaxScore: 50}
	assert.Nil(t, validateMark(&p))
}

func TestValidateMarkErrors(t *testing.T) {
	p := markPayload{StudentID: 1, Subject: "Math", Term: "1/2026", Exam: "midterm", Score: 60, MaxScore: 50}
	errs := validateMark(&p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "score")

	p = markPayload{StudentID: 0, Score: -1}
	errs = validateMark(&p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "student_id")
	assert.Contains(t, errs, "max_score")
	assert.Contains(t, errs, "score")
}

func TestValidateAnnouncement(t *testing.T) {
	p := announcementPayload{Title: "Sports day", Body: "Friday on the main field.", Audience: "ALL"}
	p.normalize()
	assert.Nil(t, validateAnnouncement(&p))

	p = announcementPayload{Title: "", Body: "x", Audience: "parents"}
	p.normalize()
	errs := validateAnnouncement(&p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "audience")
}

func TestRandomPassword(t *testing.T) {
	p1, err := randomPassword(12)
	require.NoError(t, err)
	assert.Len(t, p1, 12)

	p2, err := randomPassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	short, err := randomPassword(2)
	require.NoError(t, err)
	assert.Len(t, short, 8, "below the floor the length is raised to 8")
}
