package transcript

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Metadata is the best-effort result of pattern matching over a normalized
// transcript. Every field is independently optional; absent matches degrade
// to empty values and never cascade into failures.
type Metadata struct {
	ProjectKey   string   `json:"project_key"`
	ProjectName  string   `json:"project_name"`
	MeetingName  string   `json:"meeting_name"`
	Participants []string `json:"participants"`
	DateTime     string   `json:"date_time"`
	Duration     string   `json:"duration"`
}

var (
	recordingSuffix = "-Meeting Recording"
	titleTimestamp  = regexp.MustCompile(`-\d{8}_\d{6}`)
	durationPattern = regexp.MustCompile(`(\d{1,2}m\s?\d{1,2}s)`)
	speakerPattern  = regexp.MustCompile(`([A-Z][a-zA-Z]+\s[A-Z][a-zA-Z]+)\s\d+:\d{2}`)
	dateTimePattern = regexp.MustCompile(`\b(\d{1,2}\s[A-Za-z]+\s\d{4}),\s(\d{1,2}:\d{2}[ap]m)\b`)
)

// minNamePartLen filters out false-positive speaker matches such as
// "My Screen" timestamps; both name parts must be at least this long.
const minNamePartLen = 3

// ExtractMetadata derives project and meeting identity from transcript text.
// The meeting name is the first line stripped of the recording-system suffix;
// the project name additionally drops the date/time token, so sub-session
// qualifiers stay in the meeting name only.
func ExtractMetadata(text string) Metadata {
	firstLine := text
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine = text[:idx]
	}
	firstLine = strings.TrimSpace(firstLine)

	meetingName := strings.TrimSpace(strings.ReplaceAll(firstLine, recordingSuffix, ""))
	projectName := strings.TrimSpace(titleTimestamp.ReplaceAllString(meetingName, ""))

	participants := extractParticipants(text)

	return Metadata{
		ProjectKey:   DeriveProjectKey(projectName, participants),
		ProjectName:  projectName,
		MeetingName:  meetingName,
		Participants: participants,
		DateTime:     extractDateTime(text),
		Duration:     extractDuration(text),
	}
}

// DeriveProjectKey builds the deterministic project identity from the project
// name and the sorted participant roster. The roster is sorted here so the key
// does not depend on the caller's ordering; the input slice is not mutated.
func DeriveProjectKey(projectName string, participants []string) string {
	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)
	return fmt.Sprintf("%s - %s", projectName, strings.Join(sorted, ", "))
}

func extractDuration(text string) string {
	if m := durationPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractParticipants matches two-capitalized-word sequences immediately
// followed by an M:SS timestamp, deduplicated and sorted.
func extractParticipants(text string) []string {
	seen := make(map[string]struct{})
	for _, m := range speakerPattern.FindAllStringSubmatch(text, -1) {
		parts := strings.Fields(m[1])
		if len(parts) != 2 {
			continue
		}
		if len(parts[0]) < minNamePartLen || len(parts[1]) < minNamePartLen {
			continue
		}
		seen[parts[0]+" "+parts[1]] = struct{}{}
	}

	participants := make([]string, 0, len(seen))
	for name := range seen {
		participants = append(participants, name)
	}
	sort.Strings(participants)
	return participants
}

// extractDateTime parses a "<day> <month> <year>, <hour>:<minute><am|pm>"
// token into a normalized timestamp, or returns empty when absent.
func extractDateTime(text string) string {
	m := dateTimePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	parsed, err := time.Parse("2 January 2006 3:04pm", m[1]+" "+m[2])
	if err != nil {
		return ""
	}
	return parsed.Format("2006-01-02 15:04:05")
}
