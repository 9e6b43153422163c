package interviews

import (
	"strings"
	"testing"
	"time"
)

func TestBuildInvite(t *testing.T) {
	interview := &Interview{
		JobTitle:    "Backend Engineer",
		ScheduledAt: time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC),
		Duration:    45,
		Type:        TypeInPerson,
		Location:    "HQ, Room 4",
		MeetingLink: "https://meet.example.com/abc",
		Interviewer: "Dana Reyes",
	}

	subject, body := BuildInvite("Sam Okafor", interview)

	if subject != "Interview Invitation: Backend Engineer" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	for _, want := range []string{
		"Dear Sam Okafor,",
		"<strong>Backend Engineer</strong>",
		"Monday, 9 March 2026 at 14:30 UTC",
		"Duration: 45 minutes",
		"Format: in-person",
		"HQ, Room 4",
		"https://meet.example.com/abc",
		"Dana Reyes",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q\nbody: %s", want, body)
		}
	}
}

func TestBuildInviteEscapesHTML(t *testing.T) {
	interview := &Interview{
		JobTitle:    "QA <script>alert(1)</script>",
		ScheduledAt: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
	}

	_, body := BuildInvite("<b>Eve</b>", interview)

	if strings.Contains(body, "<script>") || strings.Contains(body, "<b>Eve</b>") {
		t.Fatalf("unescaped input in body: %s", body)
	}
}

func TestBuildInviteOmitsEmptyFields(t *testing.T) {
	interview := &Interview{
		JobTitle:    "Designer",
		ScheduledAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}

	_, body := BuildInvite("Kim", interview)

	for _, absent := range []string{"Location:", "Meeting link:", "Interviewer:"} {
		if strings.Contains(body, absent) {
			t.Fatalf("body should omit %q when empty\nbody: %s", absent, body)
		}
	}
}
