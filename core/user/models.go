package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/bunjo05/volunteer-faster/core"
)

// Roles
const (
	// Admin
	RoleAdmin      = "admin:"
	RoleAdminOwner = "admin:owner"

	// Host organization staff
	RoleHost = "host:"

	// Volunteer
	RoleVolunteer = "volunteer:"
)

var (
	AdminRoles     = []string{RoleAdmin, RoleAdminOwner}
	HostRoles      = []string{RoleHost}
	VolunteerRoles = []string{RoleVolunteer}
	AllRoles       = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner: 30,
		RoleAdmin:      21,

		// Hosts: 20 - 11
		RoleHost: 11,

		// Volunteers: 10 - 1
		RoleVolunteer: 1,
	}

	Roles = []Role{
		{Name: "Volunteer", Value: RoleVolunteer},
		{Name: "Host", Value: RoleHost},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}
)

func getAllRoles() []string {
	all := make([]string, 0, 4)
	all = append(all, AdminRoles...)
	all = append(all, HostRoles...)
	all = append(all, VolunteerRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Gender        string    `json:"gender,omitempty"`
	BirthDate     time.Time `json:"birth_date,omitempty"`
	Country       string    `json:"country,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	IsActive      *bool     `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	OTPRequired   bool      `json:"otp_required"`
	Roles         []string  `json:"roles"`
	PasswordHash  []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
	LastLogin     time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.RoleStartsWith(RoleAdmin)
}

func (u *User) IsHost() bool {
	return u.RoleStartsWith(RoleHost)
}

func (u *User) IsVolunteer() bool {
	return u.RoleStartsWith(RoleVolunteer)
}

// NewUser contains information needed to create a new User.
// Profile fields are optional here; the booking wizard enforces its own
// required set per step.
type NewUser struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Gender          string   `json:"gender" validate:"omitempty,oneof=female male other"`
	BirthDate       string   `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Country         string   `json:"country"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	PostalCode      string   `json:"postal_code"`
	Phone           string   `json:"phone" validate:"omitempty,e164"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Country = core.CleanString(nu.Country)
	nu.City = core.CleanString(nu.City)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(nu.Email)
}

func (nu *NewUser) ParsedBirthDate() time.Time {
	if nu.BirthDate == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", nu.BirthDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string   `json:"name"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Gender          string   `json:"gender" validate:"omitempty,oneof=female male other"`
	Country         string   `json:"country"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	PostalCode      string   `json:"postal_code"`
	Phone           string   `json:"phone" validate:"omitempty,e164"`
	IsActive        *bool    `json:"is_active"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
	Password        string   `json:"password" validate:"omitempty"`
	PasswordConfirm string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc *Service) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type QueryFilter struct {
	Search      string    `query:"search"`
	Roles       []string  `query:"role"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// GetFilter selects a single User; exactly one field should be set.
type GetFilter struct {
	ID    string
	Email string
}

// VerificationPurpose distinguishes the email round-trips sharing the
// verification_code table.
type VerificationPurpose string

const (
	PurposeEmailVerify VerificationPurpose = "email_verify"
	PurposeLoginOTP    VerificationPurpose = "login_otp"
)

// VerificationCode is a short-lived, single-use code sent by email.
// Only the HMAC of the code is stored.
type VerificationCode struct {
	Email     string
	Purpose   VerificationPurpose
	CodeHash  []byte
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}
