package entities

// Attachment is a document stored for a montage. Type is matched against the
// required documents of a process step.
type Attachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}
