package account

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	LastName             string `json:"nom"                   validate:"required,max=255"`
	FirstName            string `json:"prenom"                validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Phone                string `json:"telephone"             validate:"required,max=20"`
	Sex                  string `json:"sexe"                  validate:"required,oneof=masculin feminin autre"`
	Password             string `json:"password"              validate:"required,min=6,maxbytes=72,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`

	// Mistyped lists fields whose submitted value was not a string.
	Mistyped []string `json:"-"`
}

// LoginInput carries the credentials of a login request.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`

	Mistyped []string `json:"-"`
}

// UpdateInput carries a partial profile update. A nil field was not submitted
// and is left unchanged.
type UpdateInput struct {
	LastName             *string `json:"nom"`
	FirstName            *string `json:"prenom"`
	Email                *string `json:"email"`
	Phone                *string `json:"telephone"`
	Sex                  *string `json:"sexe"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`

	Mistyped []string `json:"-"`
}

// Empty reports whether no field was submitted. A lone confirmation does not count.
func (in UpdateInput) Empty() bool {
	return in.LastName == nil && in.FirstName == nil && in.Email == nil &&
		in.Phone == nil && in.Sex == nil && in.Password == nil
}
