package domain

import "github.com/google/uuid"

type FlowState string

const (
	FlowCollecting FlowState = "collecting"
	FlowBusy       FlowState = "busy"
	FlowShowing    FlowState = "showing"
)

// UploadSource tells how files reached the session. Drops are filtered by
// declared type, browsed files are not.
type UploadSource string

const (
	UploadSourceDrop   UploadSource = "drop"
	UploadSourceBrowse UploadSource = "browse"
)

func (s UploadSource) Valid() bool {
	return s == UploadSourceDrop || s == UploadSourceBrowse
}

type UploadedFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	SizeText    string `json:"size_text"`
	ContentType string `json:"content_type"`
}

// SessionSnapshot is a read-only copy of a session handed to handlers and templates.
type SessionSnapshot struct {
	ID         uuid.UUID      `json:"id"`
	State      FlowState      `json:"state"`
	Files      []UploadedFile `json:"files"`
	HospitalID HospitalID     `json:"hospital_id"`
	CanAnalyze bool           `json:"can_analyze"`
	Dashboard  *Dashboard     `json:"dashboard,omitempty"`
	Notice     string         `json:"notice,omitempty"`
}
