package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/soloadmin/admin-api/internal/api/shared"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/service/account"
)

// photoField is the multipart field carrying the profile photo.
const photoField = "photo"

// multipartMemory bounds the part of a multipart form held in memory; the rest spills to disk.
const multipartMemory = 8 << 20

// isMultipart reports whether the request body is multipart/form-data.
func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// limitBody caps the request body at limit bytes.
func limitBody(w http.ResponseWriter, r *http.Request, limit int64) {
	if limit > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
}

// decodeError classifies a body decoding failure.
func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: %w", ErrRequestTooLarge, err)
	}
	return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
}

// decodeJSONBody decodes a JSON body into v. A field holding a value of the
// wrong type is returned by name so it can be reported as a validation error.
func decodeJSONBody(r *http.Request, v interface{}) ([]string, error) {
	err := shared.DecodeJSON(r, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []string{typeErr.Field}, nil
	}
	if err != nil {
		return nil, decodeError(err)
	}
	return nil, nil
}

// parseMultipart parses the form once so that values and files can be read.
func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return decodeError(err)
	}
	return nil
}

// formValue returns the submitted value of key and whether it was present at all.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// optionalFormValue returns a pointer to the value of key, or nil when it was not submitted.
func optionalFormValue(r *http.Request, key string) *string {
	v, ok := formValue(r, key)
	if !ok {
		return nil
	}
	return &v
}

// readPhoto returns the uploaded photo, or nil when none was sent.
// One byte past the size limit is read so oversize files fail validation.
func readPhoto(r *http.Request) (*domain.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(photoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, decodeError(err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxPhotoSize+1))
	if err != nil {
		return nil, decodeError(err)
	}
	return &domain.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Data:     data,
	}, nil
}

// decodeRegister reads a registration from a JSON or multipart body.
func decodeRegister(r *http.Request) (account.RegisterInput, *domain.Upload, error) {
	var in account.RegisterInput
	if !isMultipart(r) {
		var err error
		in.Mistyped, err = decodeJSONBody(r, &in)
		return in, nil, err
	}

	if err := parseMultipart(r); err != nil {
		return in, nil, err
	}
	in.LastName, _ = formValue(r, "nom")
	in.FirstName, _ = formValue(r, "prenom")
	in.Email, _ = formValue(r, "email")
	in.Phone, _ = formValue(r, "telephone")
	in.Sex, _ = formValue(r, "sexe")
	in.Password, _ = formValue(r, "password")
	in.PasswordConfirmation, _ = formValue(r, "password_confirmation")

	photo, err := readPhoto(r)
	return in, photo, err
}

// decodeLogin reads credentials from a JSON or multipart body.
func decodeLogin(r *http.Request) (account.LoginInput, error) {
	var in account.LoginInput
	if !isMultipart(r) {
		var err error
		in.Mistyped, err = decodeJSONBody(r, &in)
		return in, err
	}

	if err := parseMultipart(r); err != nil {
		return in, err
	}
	in.Email, _ = formValue(r, "email")
	in.Password, _ = formValue(r, "password")
	return in, nil
}

// decodeUpdate reads a partial profile update. Absent fields stay nil.
func decodeUpdate(r *http.Request) (account.UpdateInput, *domain.Upload, error) {
	var in account.UpdateInput
	if !isMultipart(r) {
		var err error
		in.Mistyped, err = decodeJSONBody(r, &in)
		return in, nil, err
	}

	if err := parseMultipart(r); err != nil {
		return in, nil, err
	}
	in.LastName = optionalFormValue(r, "nom")
	in.FirstName = optionalFormValue(r, "prenom")
	in.Email = optionalFormValue(r, "email")
	in.Phone = optionalFormValue(r, "telephone")
	in.Sex = optionalFormValue(r, "sexe")
	in.Password = optionalFormValue(r, "password")
	in.PasswordConfirmation = optionalFormValue(r, "password_confirmation")

	photo, err := readPhoto(r)
	return in, photo, err
}
