package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/user"
)

const userColumns = `id, name, email, gender, birth_date, country, address, city, postal_code, phone,
	is_active, email_verified, otp_required, roles, password_hash, created_at, updated_at, last_login`

type userRepository struct {
	exec core.DBExecutor
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) *userRepository {
	return &userRepository{exec: exec}
}

func (repo userRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (user.User, error) {
	var (
		usr       user.User
		birthDate null.Time
		isActive  null.Bool
		roles     pq.StringArray
		pwdHash   null.Bytes
		lastLogin null.Time
	)
	err := row.Scan(
		&usr.ID, &usr.Name, &usr.Email, &usr.Gender, &birthDate, &usr.Country, &usr.Address,
		&usr.City, &usr.PostalCode, &usr.Phone, &isActive, &usr.EmailVerified, &usr.OTPRequired,
		&roles, &pwdHash, &usr.CreatedAt, &usr.UpdatedAt, &lastLogin,
	)
	if err != nil {
		return user.User{}, err
	}
	usr.BirthDate = birthDate.Time
	usr.IsActive = isActive.Ptr()
	usr.Roles = roles
	usr.PasswordHash = pwdHash.Bytes
	usr.LastLogin = lastLogin.Time
	return usr, nil
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	q := `SELECT EXISTS (SELECT 1 FROM "user" WHERE lower(email) = lower(?)`
	args := []interface{}{email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		q += ` AND id NOT IN (?)`
		args = append(args, ids)
	}
	q += `)`

	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}
	q = sqlx.Rebind(sqlx.DOLLAR, q)

	var exists bool
	if err = repo.getExec(exec).QueryRowContext(ctx, q, args...).Scan(&exists); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.NewString()
	q := `
	INSERT INTO "user" (` + userColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := repo.getExec(exec).ExecContext(
		ctx, q,
		usr.ID, usr.Name, usr.Email, usr.Gender,
		null.NewTime(usr.BirthDate, !usr.BirthDate.IsZero()),
		usr.Country, usr.Address, usr.City, usr.PostalCode, usr.Phone,
		null.BoolFromPtr(usr.IsActive), usr.EmailVerified, usr.OTPRequired,
		pq.Array(usr.Roles), null.BytesFrom(usr.PasswordHash),
		usr.CreatedAt, usr.UpdatedAt,
		null.NewTime(usr.LastLogin, !usr.LastLogin.IsZero()),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]user.User, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if filter != nil && !filter.IsEmpty() {
		filter.Clean()
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			clauses = append(clauses, `(name ILIKE ? OR email ILIKE ?)`)
			args = append(args, like, like)
		}
		if len(filter.Roles) > 0 {
			clauses = append(clauses, `roles && ?`)
			args = append(args, pq.Array(filter.Roles))
		}
		if filter.IsActive != nil {
			clauses = append(clauses, `is_active = ?`)
			args = append(args, *filter.IsActive)
		}
		if !filter.CreatedFrom.IsZero() {
			clauses = append(clauses, `created_at >= ?`)
			args = append(args, filter.CreatedFrom)
		}
		if !filter.CreatedTo.IsZero() {
			clauses = append(clauses, `created_at <= ?`)
			args = append(args, filter.CreatedTo)
		}
	}

	q := `SELECT ` + userColumns + ` FROM "user"`
	if len(clauses) > 0 {
		q += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	q += orderingClause(ordering, "created_at DESC")
	q = sqlx.Rebind(sqlx.DOLLAR, q)

	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	defer func() { _ = rows.Close() }()

	var users []user.User
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning user")
		}
		users = append(users, usr)
	}
	return users, errors.Wrap(rows.Err(), "querying users")
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	q := `SELECT ` + userColumns + ` FROM "user" WHERE `
	var arg interface{}
	switch {
	case filter.ID != "":
		q += `id = $1`
		arg = filter.ID
	case filter.Email != "":
		q += `lower(email) = lower($1)`
		arg = filter.Email
	default:
		return user.User{}, user.ErrNotFound
	}

	usr, err := scanUser(repo.getExec(exec).QueryRowContext(ctx, q, arg))
	if err != nil {
		return user.User{}, trapNoRowsErr(err, "getting user")
	}
	return usr, nil
}

// UpdateUser only saves set fields, merging with the stored row.
func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	orig, err := repo.GetUser(ctx, user.GetFilter{ID: usr.ID}, exec...)
	if err != nil {
		return user.User{}, err
	}
	merged := mergeUser(orig, usr)

	q := `
	UPDATE "user"
	SET name = $2, email = $3, gender = $4, birth_date = $5, country = $6, address = $7, city = $8,
		postal_code = $9, phone = $10, is_active = $11, email_verified = $12, otp_required = $13,
		roles = $14, password_hash = $15, updated_at = $16, last_login = $17
	WHERE id = $1`
	_, err = repo.getExec(exec).ExecContext(
		ctx, q,
		merged.ID, merged.Name, merged.Email, merged.Gender,
		null.NewTime(merged.BirthDate, !merged.BirthDate.IsZero()),
		merged.Country, merged.Address, merged.City, merged.PostalCode, merged.Phone,
		null.BoolFromPtr(merged.IsActive), merged.EmailVerified, merged.OTPRequired,
		pq.Array(merged.Roles), null.BytesFrom(merged.PasswordHash),
		merged.UpdatedAt,
		null.NewTime(merged.LastLogin, !merged.LastLogin.IsZero()),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return merged, nil
}

func mergeUser(orig, usr user.User) user.User {
	if usr.Name != "" {
		orig.Name = usr.Name
	}
	if usr.Email != "" {
		orig.Email = usr.Email
	}
	if usr.Gender != "" {
		orig.Gender = usr.Gender
	}
	if !usr.BirthDate.IsZero() {
		orig.BirthDate = usr.BirthDate
	}
	if usr.Country != "" {
		orig.Country = usr.Country
	}
	if usr.Address != "" {
		orig.Address = usr.Address
	}
	if usr.City != "" {
		orig.City = usr.City
	}
	if usr.PostalCode != "" {
		orig.PostalCode = usr.PostalCode
	}
	if usr.Phone != "" {
		orig.Phone = usr.Phone
	}
	if usr.IsActive != nil {
		orig.IsActive = usr.IsActive
	}
	if usr.EmailVerified {
		orig.EmailVerified = true
	}
	if usr.OTPRequired {
		orig.OTPRequired = true
	}
	if usr.Roles != nil {
		orig.Roles = usr.Roles
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	if !usr.LastLogin.IsZero() {
		orig.LastLogin = usr.LastLogin
	}
	if !usr.UpdatedAt.IsZero() {
		orig.UpdatedAt = usr.UpdatedAt
	}
	return orig
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "building delete query")
	}
	q = sqlx.Rebind(sqlx.DOLLAR, q)

	res, err := repo.getExec(exec).ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (repo userRepository) UpsertVerificationCode(ctx context.Context, code user.VerificationCode, exec ...core.DBExecutor) error {
	q := `
	INSERT INTO verification_code (email, purpose, code_hash, attempts, expires_at, created_at)
	VALUES ($1, $2, $3, 0, $4, $5)
	ON CONFLICT (email, purpose)
	DO UPDATE SET code_hash = excluded.code_hash, attempts = 0, expires_at = excluded.expires_at, created_at = excluded.created_at`
	_, err := repo.getExec(exec).ExecContext(ctx, q, code.Email, code.Purpose, code.CodeHash, code.ExpiresAt, code.CreatedAt)
	return errors.Wrap(err, "upserting verification code")
}

func (repo userRepository) GetVerificationCode(ctx context.Context, email string, purpose user.VerificationPurpose, exec ...core.DBExecutor) (user.VerificationCode, error) {
	q := `
	SELECT email, purpose, code_hash, attempts, expires_at, created_at
	FROM verification_code
	WHERE email = $1 AND purpose = $2`
	var code user.VerificationCode
	err := repo.getExec(exec).QueryRowContext(ctx, q, email, purpose).Scan(
		&code.Email, &code.Purpose, &code.CodeHash, &code.Attempts, &code.ExpiresAt, &code.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.VerificationCode{}, user.ErrCodeNotFound
		}
		return user.VerificationCode{}, errors.Wrap(err, "getting verification code")
	}
	return code, nil
}

func (repo userRepository) IncrementVerificationAttempts(ctx context.Context, email string, purpose user.VerificationPurpose, exec ...core.DBExecutor) (int, error) {
	q := `
	UPDATE verification_code
	SET attempts = attempts + 1
	WHERE email = $1 AND purpose = $2
	RETURNING attempts`
	var attempts int
	err := repo.getExec(exec).QueryRowContext(ctx, q, email, purpose).Scan(&attempts)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, user.ErrCodeNotFound
		}
		return 0, errors.Wrap(err, "incrementing verification attempts")
	}
	return attempts, nil
}

func (repo userRepository) DeleteVerificationCode(ctx context.Context, email string, purpose user.VerificationPurpose, exec ...core.DBExecutor) error {
	q := `DELETE FROM verification_code WHERE email = $1 AND purpose = $2`
	_, err := repo.getExec(exec).ExecContext(ctx, q, email, purpose)
	return errors.Wrap(err, "deleting verification code")
}

func orderingClause(ordering []core.DBOrdering, deflt string) string {
	if len(ordering) == 0 {
		return ` ORDER BY ` + deflt
	}
	parts := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		parts = append(parts, ord.String())
	}
	return ` ORDER BY ` + strings.Join(parts, ", ")
}
