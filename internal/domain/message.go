package domain

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// UploadsPath is the URL prefix attachments are served under.
const UploadsPath = "/uploads/"

// Message is one record of the chat log. The set of implementations is
// closed: TextMessage, ImageMessage and FileMessage.
type Message interface {
	Kind() Kind
	Author() string
	Meta() RecordMeta
	isMessage()
}

// RecordMeta is assigned when a record is appended and never changes.
type RecordMeta struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

type TextMessage struct {
	RecordMeta
	AuthorID string
	Body     string
}

// Attachment references bytes stored outside the log.
type Attachment struct {
	URL       string
	Filename  string
	SizeBytes int64
	MimeType  string
}

type ImageMessage struct {
	RecordMeta
	AuthorID string
	Attachment
}

type FileMessage struct {
	RecordMeta
	AuthorID string
	Attachment
}

func (TextMessage) Kind() Kind  { return KindText }
func (ImageMessage) Kind() Kind { return KindImage }
func (FileMessage) Kind() Kind  { return KindFile }

func (m TextMessage) Author() string  { return m.AuthorID }
func (m ImageMessage) Author() string { return m.AuthorID }
func (m FileMessage) Author() string  { return m.AuthorID }

func (m TextMessage) Meta() RecordMeta  { return m.RecordMeta }
func (m ImageMessage) Meta() RecordMeta { return m.RecordMeta }
func (m FileMessage) Meta() RecordMeta  { return m.RecordMeta }

func (TextMessage) isMessage()  {}
func (ImageMessage) isMessage() {}
func (FileMessage) isMessage()  {}

// NewAttachment builds the attachment for a file already written under
// storedName. The URL is derived from the name alone.
func NewAttachment(storedName string, size int64, mimeType string) Attachment {
	return Attachment{
		URL:       UploadsPath + storedName,
		Filename:  storedName,
		SizeBytes: size,
		MimeType:  mimeType,
	}
}

// RecordHandle identifies an appended record: its id and its position in the log.
type RecordHandle struct {
	ID    uuid.UUID
	Index int
}

// ViewRecord is a record as seen by one viewer. Field order and the
// always-present nulls match what polling clients already parse.
type ViewRecord struct {
	Filename *string `json:"filename"`
	IsSent   bool    `json:"isSent"`
	Text     *string `json:"text"`
	Type     Kind    `json:"type"`
	URL      *string `json:"url"`
}

// NewViewRecord relabels m for viewerID.
func NewViewRecord(m Message, viewerID string) ViewRecord {
	view := ViewRecord{
		Type:   m.Kind(),
		IsSent: m.Author() == viewerID,
	}

	switch msg := m.(type) {
	case TextMessage:
		body := msg.Body
		view.Text = &body
	case ImageMessage:
		view.URL, view.Filename = attachmentFields(msg.Attachment)
	case FileMessage:
		view.URL, view.Filename = attachmentFields(msg.Attachment)
	}
	return view
}

func attachmentFields(a Attachment) (*string, *string) {
	url, name := a.URL, a.Filename
	return &url, &name
}
