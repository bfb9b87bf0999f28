package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the only role an account can currently hold.
const RoleAdmin = "admin"

// Sex is the enumerated sex of an administrator.
type Sex string

// Valid Sex values. The wire values are the ones clients already send.
const (
	SexMasculine Sex = "masculin"
	SexFeminine  Sex = "feminin"
	SexOther     Sex = "autre"
)

// Sexes lists every accepted Sex value in display order.
var Sexes = []Sex{SexMasculine, SexFeminine, SexOther}

// ParseSex converts s into a Sex, returning ErrInvalidSex for unknown values.
func ParseSex(s string) (Sex, error) {
	for _, v := range Sexes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", ErrInvalidSex
}

// Administrator is the single privileged account managed by the service.
// The password hash and any remember-token never leave the process in JSON.
type Administrator struct {
	ID             uuid.UUID `json:"id"              db:"id"`
	LastName       string    `json:"nom"             db:"nom"`
	FirstName      string    `json:"prenom"          db:"prenom"`
	Email          string    `json:"email"           db:"email"`
	Phone          string    `json:"telephone"       db:"telephone"`
	Sex            Sex       `json:"sexe"            db:"sexe"`
	HashedPassword string    `json:"-"               db:"password"`
	Photo          *string   `json:"photo"           db:"photo"`
	Role           string    `json:"role"            db:"role"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// NewAdministrator builds an administrator with a fresh ID, the admin role
// and creation timestamps. The password must already be hashed.
func NewAdministrator(
	lastName, firstName, email, phone string,
	sex Sex,
	hashedPassword string,
	photo *string,
) (*Administrator, error) {
	now := time.Now().UTC()
	a := &Administrator{
		ID:             uuid.New(),
		LastName:       lastName,
		FirstName:      firstName,
		Email:          email,
		Phone:          phone,
		Sex:            sex,
		HashedPassword: hashedPassword,
		Photo:          photo,
		Role:           RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the invariants that must hold before persisting.
// Request-level rules (lengths, formats, uniqueness) are enforced by the account service.
func (a *Administrator) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAdminID
	}
	if a.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if _, err := ParseSex(string(a.Sex)); err != nil {
		return err
	}
	return nil
}

// IsAdmin reports whether the account carries the admin role.
func (a *Administrator) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// HasPhoto reports whether a photo blob is associated with the account.
func (a *Administrator) HasPhoto() bool {
	return a.Photo != nil && *a.Photo != ""
}

// AccessToken is the persisted record behind an issued bearer token.
// Deleting the record revokes the token.
type AccessToken struct {
	ID              uuid.UUID  `db:"id"`
	AdministratorID uuid.UUID  `db:"administrator_id"`
	Name            string     `db:"name"`
	LastUsedAt      *time.Time `db:"last_used_at"`
	CreatedAt       time.Time  `db:"created_at"`
	ExpiresAt       time.Time  `db:"expires_at"`
}

// Expired reports whether the token is past its expiry at now.
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}
