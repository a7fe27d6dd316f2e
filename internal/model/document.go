package model

import "time"

// Document is the current question set: ordered question texts and the audio
// reference for each of them. Questions[i] pairs with AudioURLs[i].
type Document struct {
	Questions []string `json:"questions"`
	AudioURLs []string `json:"audioUrls"`
}

// EmptyDocument is what readers get before the first write.
func EmptyDocument() *Document {
	return &Document{Questions: []string{}, AudioURLs: []string{}}
}

// Normalize replaces nil slices with empty ones so the document always encodes as arrays.
func (d *Document) Normalize() *Document {
	if d.Questions == nil {
		d.Questions = []string{}
	}
	if d.AudioURLs == nil {
		d.AudioURLs = []string{}
	}
	return d
}

// MediaAsset is one uploaded audio file placed in public storage.
type MediaAsset struct {
	SlotID      string    `json:"slot_id"`
	Name        string    `json:"name"`
	StorageKey  string    `json:"storage_key"`
	PublicPath  string    `json:"public_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
