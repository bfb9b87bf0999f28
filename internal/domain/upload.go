package domain

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxPhotoSize is the largest accepted photo upload (5120 KB).
const MaxPhotoSize = 5120 * 1024

// PhotoDir is the blob key prefix under which photos are stored.
const PhotoDir = "photos"

// allowedPhotoTypes maps accepted sniffed MIME types to the extension used for the blob key.
var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Upload is a file received with a request.
type Upload struct {
	Filename string
	Size     int64
	Data     []byte
}

// ContentType sniffs the MIME type from the file content, ignoring the client filename.
func (u *Upload) ContentType() string {
	return mimetype.Detect(u.Data).String()
}

// ValidatePhoto returns the messages describing why u is not an acceptable photo.
// An empty result means the upload is valid.
func (u *Upload) ValidatePhoto() []string {
	var msgs []string

	mt := mimetype.Detect(u.Data)
	isImage := strings.HasPrefix(mt.String(), "image/")
	if !isImage {
		msgs = append(msgs, "The photo field must be an image.")
	}
	if _, ok := allowedPhotoTypes[baseType(mt.String())]; !ok {
		msgs = append(msgs, "The photo field must be a file of type: jpeg, jpg, png, gif.")
	}
	if u.Size > MaxPhotoSize || int64(len(u.Data)) > MaxPhotoSize {
		msgs = append(msgs, fmt.Sprintf("The photo field must not be greater than %d kilobytes.", MaxPhotoSize/1024))
	}
	return msgs
}

// PhotoKey generates a fresh blob key for the upload, e.g. photos/<uuid>.png.
func (u *Upload) PhotoKey() string {
	ext, ok := allowedPhotoTypes[baseType(u.ContentType())]
	if !ok {
		ext = ".bin"
	}
	return PhotoDir + "/" + uuid.NewString() + ext
}

func baseType(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		return strings.TrimSpace(mime[:i])
	}
	return mime
}
