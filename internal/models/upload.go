package models

// Default metadata for uploads that declare none
const (
	DefaultUploadFilename    = "file.pdf"
	DefaultUploadContentType = "application/pdf"
)

// Upload is a file received from a caller, kept only for one request
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FilenameOrDefault returns the declared filename or file.pdf
func (u *Upload) FilenameOrDefault() string {
	if u.Filename == "" {
		return DefaultUploadFilename
	}
	return u.Filename
}

// ContentTypeOrDefault returns the declared content type or application/pdf
func (u *Upload) ContentTypeOrDefault() string {
	if u.ContentType == "" || u.ContentType == "application/octet-stream" {
		return DefaultUploadContentType
	}
	return u.ContentType
}

// Size returns the upload size in bytes
func (u *Upload) Size() int {
	return len(u.Data)
}
