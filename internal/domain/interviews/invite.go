package interviews

import (
	"fmt"
	"html"
	"strings"
)

// BuildInvite renders the invitation subject and HTML body for a scheduled
// interview. All user supplied values are escaped.
func BuildInvite(applicantName string, interview *Interview) (subject, body string) {
	subject = fmt.Sprintf("Interview Invitation: %s", interview.JobTitle)

	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(applicantName))
	fmt.Fprintf(&b, "<p>You have been invited to an interview for the position of <strong>%s</strong>.</p>",
		html.EscapeString(interview.JobTitle))
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Date: %s</li>", interview.ScheduledAt.Format("Monday, 2 January 2006 at 15:04 MST"))
	if interview.Duration > 0 {
		fmt.Fprintf(&b, "<li>Duration: %d minutes</li>", interview.Duration)
	}
	if interview.Type != "" {
		fmt.Fprintf(&b, "<li>Format: %s</li>", html.EscapeString(interview.Type))
	}
	if interview.Location != "" {
		fmt.Fprintf(&b, "<li>Location: %s</li>", html.EscapeString(interview.Location))
	}
	if interview.MeetingLink != "" {
		link := html.EscapeString(interview.MeetingLink)
		fmt.Fprintf(&b, "<li>Meeting link: <a href=%q>%s</a></li>", link, link)
	}
	if interview.Interviewer != "" {
		fmt.Fprintf(&b, "<li>Interviewer: %s</li>", html.EscapeString(interview.Interviewer))
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Please reply to this email if you need to reschedule.</p>")
	b.WriteString("<p>Best regards,<br>The Hiring Team</p>")
	b.WriteString("</body></html>")
	return subject, b.String()
}
