package domain

// FileKind distinguishes prompt text from image attachments.
type FileKind string

const (
	FileKindText  FileKind = "text"
	FileKindImage FileKind = "image"
)

// ProcessedFile is the result of extracting one attached file. For images
// Content holds the validated path.
type ProcessedFile struct {
	Path    string
	Name    string
	Kind    FileKind
	Content string
	Size    int64
	Err     error
}

// OK reports whether extraction succeeded.
func (f ProcessedFile) OK() bool {
	return f.Err == nil
}
