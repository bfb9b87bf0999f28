package account

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
)

const (
	nameRules     = "required,max=255"
	emailRules    = "required,email,max=255"
	phoneRules    = "required,max=20"
	sexRules      = "required,oneof=masculin feminin autre"
	passwordRules = "min=6,maxbytes=72"

	msgEmailTaken = "The email has already been taken."
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

// maxBytes limits the encoded length of a string. bcrypt refuses passwords
// longer than 72 bytes whatever their character count.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// message renders a failed rule the way clients of the API expect it.
func message(field, tag, param string) string {
	attr := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, param)
	case "maxbytes":
		return fmt.Sprintf("The %s field must not be greater than %s bytes.", attr, param)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", attr, param)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "string":
		return fmt.Sprintf("The %s field must be a string.", attr)
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

// collect adds the messages of a validator error to errs. field overrides the
// reported field name, which validate.Var leaves empty.
func collect(errs *domain.ValidationErrors, err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		errs.Add(name, message(name, fe.Tag(), fe.Param()))
	}
	return nil
}

func (s *Service) validateRegister(ctx context.Context, in RegisterInput, photo *domain.Upload) (*domain.ValidationErrors, error) {
	errs := domain.NewValidationErrors()
	if err := collect(errs, s.validate.StructCtx(ctx, in), ""); err != nil {
		return nil, err
	}
	if !errs.Has("email") {
		taken, err := s.admins.EmailExists(ctx, in.Email, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			errs.Add("email", msgEmailTaken)
		}
	}
	markMistyped(errs, in.Mistyped)
	validatePhoto(errs, photo)
	return errs, nil
}

func (s *Service) validateLogin(ctx context.Context, in LoginInput) (*domain.ValidationErrors, error) {
	errs := domain.NewValidationErrors()
	if err := collect(errs, s.validate.StructCtx(ctx, in), ""); err != nil {
		return nil, err
	}
	markMistyped(errs, in.Mistyped)
	return errs, nil
}

func (s *Service) validateUpdate(
	ctx context.Context,
	self uuid.UUID,
	in UpdateInput,
	photo *domain.Upload,
) (*domain.ValidationErrors, error) {
	errs := domain.NewValidationErrors()

	fields := []struct {
		name  string
		value *string
		rules string
	}{
		{"nom", in.LastName, nameRules},
		{"prenom", in.FirstName, nameRules},
		{"email", in.Email, emailRules},
		{"telephone", in.Phone, phoneRules},
		{"sexe", in.Sex, sexRules},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := collect(errs, s.validate.VarCtx(ctx, *f.value, f.rules), f.name); err != nil {
			return nil, err
		}
	}

	if in.Email != nil && !errs.Has("email") {
		taken, err := s.admins.EmailExists(ctx, *in.Email, self)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			errs.Add("email", msgEmailTaken)
		}
	}

	if in.Password != nil && *in.Password != "" {
		if err := collect(errs, s.validate.VarCtx(ctx, *in.Password, passwordRules), "password"); err != nil {
			return nil, err
		}
		confirmation := ""
		if in.PasswordConfirmation != nil {
			confirmation = *in.PasswordConfirmation
		}
		err := s.validate.VarWithValueCtx(ctx, *in.Password, confirmation, "eqfield")
		if err := collect(errs, err, "password"); err != nil {
			return nil, err
		}
	}

	markMistyped(errs, in.Mistyped)
	validatePhoto(errs, photo)
	return errs, nil
}

// markMistyped replaces any messages reported for fields whose value was not a string.
func markMistyped(errs *domain.ValidationErrors, fields []string) {
	for _, f := range fields {
		errs.Fields[f] = []string{message(f, "string", "")}
	}
}

func validatePhoto(errs *domain.ValidationErrors, photo *domain.Upload) {
	if photo == nil {
		return
	}
	for _, msg := range photo.ValidatePhoto() {
		errs.Add("photo", msg)
	}
}
