package transcript

import (
	"reflect"
	"testing"
)

const sampleTranscript = `Project Phoenix - Sprint 15 Planning-20251130_093000-Meeting Recording
30 November 2025, 9:30am
12m 30s

Alice Johnson 0:05
Good morning everyone, let us start with the backlog.

Bob Smith 0:42
I finished the payment integration yesterday.

My Screen 1:10
(shared content)

Alice Johnson 2:15
Great, next item.
`

func TestExtractMetadata_FullHeader(t *testing.T) {
	md := ExtractMetadata(sampleTranscript)

	if md.MeetingName != "Project Phoenix - Sprint 15 Planning-20251130_093000" {
		t.Fatalf("unexpected meeting name: %q", md.MeetingName)
	}
	if md.ProjectName != "Project Phoenix - Sprint 15 Planning" {
		t.Fatalf("unexpected project name: %q", md.ProjectName)
	}
	if md.Duration != "12m 30s" {
		t.Fatalf("unexpected duration: %q", md.Duration)
	}
	if md.DateTime != "2025-11-30 09:30:00" {
		t.Fatalf("unexpected datetime: %q", md.DateTime)
	}

	wantParticipants := []string{"Alice Johnson", "Bob Smith"}
	if !reflect.DeepEqual(md.Participants, wantParticipants) {
		t.Fatalf("unexpected participants: %v want %v", md.Participants, wantParticipants)
	}

	wantKey := "Project Phoenix - Sprint 15 Planning - Alice Johnson, Bob Smith"
	if md.ProjectKey != wantKey {
		t.Fatalf("unexpected project key: %q want %q", md.ProjectKey, wantKey)
	}
}

func TestExtractMetadata_ShortNamePartsFiltered(t *testing.T) {
	text := "Standup-Meeting Recording\nJo Li 0:05\nhello\nAnna Smith 0:10\nhi\n"
	md := ExtractMetadata(text)

	want := []string{"Anna Smith"}
	if !reflect.DeepEqual(md.Participants, want) {
		t.Fatalf("unexpected participants: %v want %v", md.Participants, want)
	}
}

func TestExtractMetadata_MissingFieldsDegrade(t *testing.T) {
	md := ExtractMetadata("Just a plain line of text with no structure")

	if md.MeetingName != "Just a plain line of text with no structure" {
		t.Fatalf("unexpected meeting name: %q", md.MeetingName)
	}
	if md.Duration != "" || md.DateTime != "" {
		t.Fatalf("expected empty duration and datetime, got %q / %q", md.Duration, md.DateTime)
	}
	if len(md.Participants) != 0 {
		t.Fatalf("expected no participants, got %v", md.Participants)
	}
}

func TestExtractMetadata_ParticipantsDedupedAndSorted(t *testing.T) {
	text := "Sync-Meeting Recording\nZoe Ward 0:05\nhi\nAnna Smith 0:10\nhello\nZoe Ward 1:30\nagain\n"
	md := ExtractMetadata(text)

	want := []string{"Anna Smith", "Zoe Ward"}
	if !reflect.DeepEqual(md.Participants, want) {
		t.Fatalf("unexpected participants: %v want %v", md.Participants, want)
	}
}

func TestDeriveProjectKey_Deterministic(t *testing.T) {
	key := DeriveProjectKey("Apollo", []string{"Alice Johnson", "Bob Smith"})
	if key != "Apollo - Alice Johnson, Bob Smith" {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestDeriveProjectKey_OrderIndependent(t *testing.T) {
	participants := []string{"Bob Smith", "Alice Johnson"}
	key := DeriveProjectKey("Apollo", participants)
	if key != "Apollo - Alice Johnson, Bob Smith" {
		t.Fatalf("unexpected key: %q", key)
	}
	// The caller's slice keeps its order.
	if participants[0] != "Bob Smith" {
		t.Fatalf("input slice was mutated: %v", participants)
	}
}
