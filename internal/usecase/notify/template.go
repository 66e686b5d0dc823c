package notify

import (
	"fmt"
	"html/template"
	"strings"
)

// emailTemplate is the static HTML body. Executives get the executive summary
// section; contributors get participant highlights instead.
var emailTemplate = template.Must(template.New("email").Parse(`<html>
<body>
  <h1>Meeting Summary: {{.MeetingName}}</h1>
  <p>Project: {{.ProjectName}}</p>
  <ul>
    {{range .SummaryPoints}}<li>{{.}}</li>
    {{end}}
  </ul>
  {{if .GlobalSummary}}
  <div>
    <h2>Executive Summary</h2>
    <div>{{.GlobalSummary}}</div>
  </div>
  {{end}}
  {{if .ParticipantHighlights}}
  <div>
    <h2>Participant Highlights</h2>
    <div>{{range .ParticipantHighlights}}<p>{{.}}</p>{{end}}</div>
  </div>
  {{end}}
</body>
</html>`))

type emailData struct {
	MeetingName           string
	ProjectName           string
	SummaryPoints         []string
	GlobalSummary         string
	ParticipantHighlights []string
}

// renderBody fills the template for one recipient. The global summary section
// is rendered for executives only and the participant section for everyone
// else.
func renderBody(n Notification, executive bool) (string, error) {
	data := emailData{
		MeetingName:   n.MeetingName,
		ProjectName:   n.ProjectName,
		SummaryPoints: n.SummaryPoints,
	}
	if executive {
		data.GlobalSummary = n.GlobalSummary
	} else {
		data.ParticipantHighlights = participantHighlights(n)
	}

	var sb strings.Builder
	if err := emailTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return sb.String(), nil
}

// participantHighlights flattens the per-participant records into one line
// per participant.
func participantHighlights(n Notification) []string {
	lines := make([]string, 0, len(n.ParticipantRecords))
	for _, ps := range n.ParticipantRecords {
		lines = append(lines, fmt.Sprintf(
			"%s | Updates: %s Roadblocks: %s Actionable: %s",
			ps.ParticipantName,
			strings.Join(ps.KeyUpdates, ", "),
			strings.Join(ps.Roadblocks, ", "),
			strings.Join(ps.Actionable, ", "),
		))
	}
	return lines
}
