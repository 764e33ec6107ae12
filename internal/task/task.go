package task

import (
	"strings"
	"time"

	"reelpress/internal/clip"
)

// Status represents the lifecycle of a processing task.
type Status string

const (
	StatusInitiated  Status = "initiated"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

var allStatuses = []Status{
	StatusInitiated,
	StatusProcessing,
	StatusCompleted,
	StatusError,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// Terminal reports whether the status permits no further mutation except
// appended warnings.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Task is one end-to-end request to produce a captioned video.
type Task struct {
	ID                 string
	Status             Status
	Progress           int
	CreatedAt          time.Time
	Descriptors        []clip.Descriptor
	SubtitleScript     string
	VideoCount         int
	HasCustomSubtitles bool
	OutputFile         string
	Error              string
	Warnings           []string

	finishedAt time.Time
}

// New constructs a task in the initiated state.
func New(id string, descriptors []clip.Descriptor, subtitleScript string) *Task {
	return &Task{
		ID:                 id,
		Status:             StatusInitiated,
		CreatedAt:          time.Now().UTC(),
		Descriptors:        descriptors,
		SubtitleScript:     subtitleScript,
		VideoCount:         len(descriptors),
		HasCustomSubtitles: strings.TrimSpace(subtitleScript) != "",
	}
}

// Clone returns a snapshot copy safe to hand to readers.
func (t *Task) Clone() *Task {
	cp := *t
	cp.Descriptors = append([]clip.Descriptor(nil), t.Descriptors...)
	cp.Warnings = append([]string(nil), t.Warnings...)
	return &cp
}
