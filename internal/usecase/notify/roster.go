package notify

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Recipient is a roster entry matched to a meeting participant.
type Recipient struct {
	Name  string
	Email string
	Role  string
}

// executiveRoles is the role-name allowlist that routes a recipient to the
// executive email variant.
var executiveRoles = map[string]struct{}{
	"manager":        {},
	"senior manager": {},
	"director":       {},
	"vp":             {},
	"vice president": {},
	"chief":          {},
	"head":           {},
	"lead":           {},
}

// IsExecutive reports whether the recipient's role is on the executive
// allowlist.
func (r Recipient) IsExecutive() bool {
	_, ok := executiveRoles[strings.ToLower(strings.TrimSpace(r.Role))]
	return ok
}

// LoadRoster reads the participant roster CSV (EmployeeName, EmployeeEmail,
// Role columns) and returns only the rows whose name matches a meeting
// participant, case-insensitively.
func LoadRoster(path string, meetingParticipants []string) ([]Recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	return readRoster(f, meetingParticipants)
}

func readRoster(r io.Reader, meetingParticipants []string) ([]Recipient, error) {
	attending := make(map[string]struct{}, len(meetingParticipants))
	for _, p := range meetingParticipants {
		attending[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"EmployeeName", "EmployeeEmail", "Role"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("roster is missing required column %q", required)
		}
	}

	var recipients []Recipient
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster row: %w", err)
		}

		name := strings.TrimSpace(row[cols["EmployeeName"]])
		if _, ok := attending[strings.ToLower(name)]; !ok {
			continue
		}
		recipients = append(recipients, Recipient{
			Name:  name,
			Email: strings.TrimSpace(row[cols["EmployeeEmail"]]),
			Role:  row[cols["Role"]],
		})
	}
	return recipients, nil
}
