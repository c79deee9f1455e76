package user

import (
	"context"
	"crypto/hmac"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
)

var (
	// errors
	ErrNotFound        = errors.New("user not found")
	ErrEmailExists     = errors.New("a user with this email already exists")
	ErrCodeNotFound    = errors.New("no pending verification code")
	ErrCodeMismatch    = errors.New("invalid verification code")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrTooManyAttempts = errors.New("too many failed attempts; request a new code")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers []User, exec ...core.DBExecutor) error
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		// QueryUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Name or User.Email.
		QueryUsers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]User, error)
		GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)

		UpsertVerificationCode(ctx context.Context, code VerificationCode, exec ...core.DBExecutor) error
		GetVerificationCode(ctx context.Context, email string, purpose VerificationPurpose, exec ...core.DBExecutor) (VerificationCode, error)
		IncrementVerificationAttempts(ctx context.Context, email string, purpose VerificationPurpose, exec ...core.DBExecutor) (int, error)
		DeleteVerificationCode(ctx context.Context, email string, purpose VerificationPurpose, exec ...core.DBExecutor) error
	}

	Service struct {
		db      core.DB
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(db core.DB, repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		db:      db,
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *Service) CheckEmailUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email, exclUsers); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser, exec ...core.DBExecutor) (User, error) {
	return svc.create(ctx, nu, false, exec...)
}

// RegisterVerified creates a volunteer account whose email address has already
// been verified by the booking wizard's code round-trip.
func (svc *Service) RegisterVerified(ctx context.Context, nu NewUser, exec ...core.DBExecutor) (User, error) {
	return svc.create(ctx, nu, true, exec...)
}

func (svc *Service) create(ctx context.Context, nu NewUser, emailVerified bool, exec ...core.DBExecutor) (User, error) {
	now := time.Now().UTC()
	isActive := true
	roles := nu.Roles
	if len(roles) == 0 {
		roles = []string{RoleVolunteer}
	}
	usr := User{
		Name:          nu.Name,
		Email:         nu.Email,
		Gender:        nu.Gender,
		BirthDate:     nu.ParsedBirthDate(),
		Country:       nu.Country,
		Address:       nu.Address,
		City:          nu.City,
		PostalCode:    nu.PostalCode,
		Phone:         nu.Phone,
		IsActive:      &isActive,
		EmailVerified: emailVerified,
		Roles:         roles,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	return svc.repo.CreateUser(ctx, usr, exec...)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]User, error) {
	return svc.repo.QueryUsers(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

// EmailExists reports whether an account already exists for the given email.
// This is the booking wizard's identity-gate guard.
func (svc *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, errors.Wrap(err, "finding user by email")
	}
	return true, nil
}

func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr := User{
		ID:         id,
		Name:       uu.Name,
		Email:      uu.Email,
		Gender:     uu.Gender,
		Country:    uu.Country,
		Address:    uu.Address,
		City:       uu.City,
		PostalCode: uu.PostalCode,
		Phone:      uu.Phone,
		IsActive:   uu.IsActive,
		Roles:      uu.Roles,
		UpdatedAt:  time.Now().UTC(),
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, errors.Wrap(err, "setting password")
		}
	}
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	usr.UpdatedAt = usr.LastLogin
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteUsersByID(ctx, ids)
	return err
}

// SendVerificationCode generates a fresh code for the given email and purpose,
// stores its HMAC and emails the code. Any pending code is replaced.
func (svc *Service) SendVerificationCode(ctx context.Context, email string, purpose VerificationPurpose) error {
	email = core.CleanString(email, true /* lower */)

	code, err := GenerateVerificationCode()
	if err != nil {
		return errors.Wrap(err, "generating verification code")
	}

	now := NowFunc().UTC()
	vc := VerificationCode{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  HashVerificationCode(email, code),
		ExpiresAt: now.Add(svc.conf.VerificationCodeTimeout),
		CreatedAt: now,
	}
	if err := svc.repo.UpsertVerificationCode(ctx, vc); err != nil {
		return errors.Wrap(err, "saving verification code")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: email}},
		Subject:      "Your verification code",
		TemplateName: "verification-code",
		TemplateData: struct {
			Code    string
			Email   string
			Minutes int
		}{code, email, int(svc.conf.VerificationCodeTimeout / time.Minute)},
	})
	return nil
}

// VerifyCode checks a code against the pending one for email+purpose.
// Expiry and the bounded attempt budget are enforced here; a successful
// verification consumes the code.
func (svc *Service) VerifyCode(ctx context.Context, email, code string, purpose VerificationPurpose) error {
	email = core.CleanString(email, true /* lower */)

	vc, err := svc.repo.GetVerificationCode(ctx, email, purpose)
	if err != nil {
		if errors.Cause(err) == ErrCodeNotFound {
			return ErrCodeNotFound
		}
		return errors.Wrap(err, "loading verification code")
	}

	if NowFunc().UTC().After(vc.ExpiresAt) {
		return ErrCodeExpired
	}
	if vc.Attempts >= svc.conf.VerificationCodeMaxAttempts {
		return ErrTooManyAttempts
	}

	if !hmac.Equal(vc.CodeHash, HashVerificationCode(email, code)) {
		attempts, aErr := svc.repo.IncrementVerificationAttempts(ctx, email, purpose)
		if aErr != nil {
			return errors.Wrap(aErr, "recording failed attempt")
		}
		if attempts >= svc.conf.VerificationCodeMaxAttempts {
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}

	if err := svc.repo.DeleteVerificationCode(ctx, email, purpose); err != nil {
		return errors.Wrap(err, "consuming verification code")
	}
	return nil
}

// MarkEmailVerified flips the verified flag after a successful code round-trip
// for an existing account.
func (svc *Service) MarkEmailVerified(ctx context.Context, usr User) (User, error) {
	usr.EmailVerified = true
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// RequestPasswordReset emails a signed reset link to the account's address.
// Callers should treat ErrNotFound as success to avoid leaking account existence.
func (svc *Service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if usr.IsActive != nil && !*usr.IsActive {
		return ErrNotFound
	}

	token, err := MakeToken(usr)
	if err != nil {
		return errors.Wrap(err, "making reset token")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password reset",
		TemplateName: "password-reset",
		TemplateData: struct {
			Name  string
			UID   string
			Token string
		}{usr.Name, EncodeUID(usr), token},
	})
	return nil
}

func (svc *Service) ResetPassword(ctx context.Context, data ResetUserPassword) error {
	invalidUID := core.NewValidationError(nil, core.FieldError{Field: "uid", Error: "invalid value"})

	id, err := decodeUID(data.UID)
	if err != nil {
		return invalidUID
	}
	usr, err := svc.GetByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return invalidUID
		}
		return errors.Wrap(err, "finding user by ID")
	}

	if err = verifyToken(usr, data.Token); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "token", Error: "invalid value"})
	}

	if err = usr.SetPassword(data.Password); err != nil {
		return errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = time.Now().UTC()
	if _, err = svc.repo.UpdateUser(ctx, usr); err != nil {
		return errors.Wrap(err, "updating user")
	}
	return nil
}

// RequestLoginOTP sends a login one-time code to an account that requires OTP.
func (svc *Service) RequestLoginOTP(ctx context.Context, usr User) error {
	if err := svc.SendVerificationCode(ctx, usr.Email, PurposeLoginOTP); err != nil {
		return errors.Wrap(err, fmt.Sprintf("sending login OTP to %s", usr.Email))
	}
	return nil
}

func (svc *Service) VerifyLoginOTP(ctx context.Context, email, otp string) error {
	return svc.VerifyCode(ctx, email, otp, PurposeLoginOTP)
}
