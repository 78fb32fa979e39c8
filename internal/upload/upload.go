package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MB = 1024 * 1024

	MaxProfilePictureBytes = 5 * MB
	MaxDBADocumentBytes    = 10 * MB

	// Backend multipart field names.
	ProfilePictureField = "profile_picture"
	DBADocumentField    = "dba_document"

	sniffBytes = 3072
)

var (
	ErrTooLarge    = errors.New("upload: file too large")
	ErrUnsupported = errors.New("upload: unsupported file type")
	ErrEmpty       = errors.New("upload: empty file")
)

// Error carries the user-facing message for a rejected upload.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// File is what the validators need to know about an upload.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	// Head holds the first bytes of the content, used when ContentType is
	// missing or generic.
	Head []byte
}

// Rule bounds one kind of upload.
type Rule struct {
	Name        string
	MaxBytes    int64
	AnyImage    bool
	Allowed     []string
	TypeMessage string
}

var ProfilePicture = Rule{
	Name:        "profile picture",
	MaxBytes:    MaxProfilePictureBytes,
	AnyImage:    true,
	TypeMessage: "Please select an image file",
}

var DBADocument = Rule{
	Name:     "DBA document",
	MaxBytes: MaxDBADocumentBytes,
	Allowed: []string{
		"application/pdf",
		"image/jpeg",
		"image/png",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	TypeMessage: "Only PDF, JPEG, PNG, DOC or DOCX files are allowed",
}

// EffectiveType returns the declared MIME type, or the sniffed one when the
// declaration is missing or application/octet-stream.
func (f File) EffectiveType() string {
	declared := strings.ToLower(strings.TrimSpace(f.ContentType))
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			declared = mt
		}
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if len(f.Head) == 0 {
		return declared
	}
	mt := mimetype.Detect(f.Head).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

func (r Rule) allows(mt string) bool {
	if r.AnyImage && strings.HasPrefix(mt, "image/") {
		return true
	}
	for _, a := range r.Allowed {
		if a == mt {
			return true
		}
	}
	return false
}

// Validate checks f against r. Type is checked before size.
func Validate(r Rule, f File) error {
	if f.Size <= 0 && len(f.Head) == 0 {
		return &Error{Kind: ErrEmpty, Message: "Please select a file to upload"}
	}
	if !r.allows(f.EffectiveType()) {
		return &Error{Kind: ErrUnsupported, Message: r.TypeMessage}
	}
	if f.Size > r.MaxBytes {
		return &Error{
			Kind:    ErrTooLarge,
			Message: fmt.Sprintf("File size must be less than %dMB", r.MaxBytes/MB),
		}
	}
	return nil
}

func ValidateProfilePicture(f File) error {
	return Validate(ProfilePicture, f)
}

func ValidateDBADocument(f File) error {
	return Validate(DBADocument, f)
}

// FromMultipart describes an uploaded form file, reading just enough of it to
// sniff its type. The returned reader yields the full content.
func FromMultipart(fh *multipart.FileHeader) (File, multipart.File, error) {
	src, err := fh.Open()
	if err != nil {
		return File{}, nil, fmt.Errorf("open upload: %w", err)
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		src.Close()
		return File{}, nil, fmt.Errorf("read upload: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		src.Close()
		return File{}, nil, fmt.Errorf("rewind upload: %w", err)
	}

	return File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Head:        head[:n],
	}, src, nil
}
