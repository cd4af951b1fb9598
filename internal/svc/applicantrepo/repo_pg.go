package applicantrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"

	"github.com/sailhq/sailpost/pkg/tracer"
	"github.com/sailhq/sailpost/pkg/validator"
)

const (
	sqlCreateApplicant = `
		INSERT INTO applicants
			(id, email, name, cpf, registration_no, age, gender, category, address, mobile_no,
			father_mother_name, father_mother_occupation, present_institute, areas_of_training,
			present_semester, last_semester_sgpa, percentage_in_10_plus_2, designation, section,
			location, status, term, quota_category, details, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING *;
`

	sqlGetApplicantByEmail = `SELECT * FROM applicants WHERE LOWER(email) = $1 AND deleted_at = 0 LIMIT 1;`
	sqlGetApplicantByID    = `SELECT * FROM applicants WHERE id = $1 AND deleted_at = 0 LIMIT 1;`

	sqlListApplicantsCount = `SELECT COUNT(*) as total FROM applicants WHERE deleted_at = 0 AND ($1 = '' OR status = $1);`

	sqlListApplicantsWithoutRange = `SELECT * FROM applicants WHERE deleted_at = 0 AND ($1 = '' OR status = $1) ORDER BY id ASC LIMIT $2;`
	sqlListApplicantsAfterID      = `SELECT * FROM applicants WHERE id > $1 AND deleted_at = 0 AND ($2 = '' OR status = $2) ORDER BY id ASC LIMIT $3;`

	// sorting to ASC, this to ensure for example we have limit 5 and before_id 12
	// we may have [11, 10, 9, 8, 7] from database (DESC)
	// to make it consistent, we reverse to ASC order [7, 8, 9, 10, 11]
	sqlListApplicantsBeforeID = `SELECT * FROM (SELECT * FROM applicants WHERE id < $1 AND deleted_at = 0 AND ($2 = '' OR status = $2) ORDER BY id DESC LIMIT $3) AS tmp ORDER BY tmp.id ASC;`
	sqlListApplicantsInRange  = `SELECT * FROM applicants WHERE (id > $1 AND id < $2) AND deleted_at = 0 AND ($3 = '' OR status = $3) ORDER BY id ASC LIMIT $4;`

	sqlUpdateApplicantStatus = `UPDATE applicants SET status = $1, updated_at = $2 WHERE id = $3 AND deleted_at = 0 RETURNING *;`
	sqlSoftDeleteApplicant   = `UPDATE applicants SET deleted_at = $1 WHERE id = $2 AND deleted_at = 0 RETURNING *;`
)

type RepoPostgresConfig struct {
	Connection sqlx.QueryerContext `validate:"required"`
}

type RepoPostgres struct {
	Config RepoPostgresConfig
}

var _ Repo = (*RepoPostgres)(nil)

// Postgres return repo interface which implements using PgSQL
func Postgres(conf RepoPostgresConfig) (service *RepoPostgres, err error) {
	err = validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	service = &RepoPostgres{
		Config: conf,
	}
	return
}

func (p *RepoPostgres) Create(ctx context.Context, in InputCreate) (out OutCreate, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	applicant := in.Applicant
	applicant.Email = strings.TrimSpace(strings.ToLower(applicant.Email))
	if len(applicant.Details) == 0 {
		applicant.Details = []byte(`{}`)
	}

	inserted := Applicant{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &inserted, sqlCreateApplicant,
		applicant.ID, applicant.Email, applicant.Name, applicant.CPF, applicant.RegistrationNo,
		applicant.Age, applicant.Gender, applicant.Category, applicant.Address, applicant.MobileNo,
		applicant.FatherMotherName, applicant.FatherMotherOcc, applicant.PresentInstitute,
		applicant.AreasOfTraining, applicant.PresentSemester, applicant.LastSemesterSGPA,
		applicant.PercentageIn12, applicant.Designation, applicant.Section, applicant.Location,
		applicant.Status, applicant.Term, applicant.QuotaCategory, applicant.Details,
		applicant.CreatedAt, applicant.UpdatedAt,
	)

	if err != nil {
		return
	}

	out = OutCreate{
		Applicant: inserted,
	}
	return
}

func (p *RepoPostgres) GetByEmail(ctx context.Context, in InputGetByEmail) (out OutGetByEmail, err error) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "applicantrepo.GetByEmail")
	defer span.End()

	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	data := Applicant{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &data, sqlGetApplicantByEmail, strings.ToLower(in.Email))
	if err != nil {
		return
	}

	out = OutGetByEmail{
		Applicant: data,
	}
	return
}

func (p *RepoPostgres) GetByID(ctx context.Context, in InputGetByID) (out OutGetByID, err error) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "applicantrepo.GetByID")
	defer span.End()

	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	data := Applicant{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &data, sqlGetApplicantByID, in.ID)
	if err != nil {
		return
	}

	out = OutGetByID{
		Applicant: data,
	}
	return
}

// List all query is exclusive, means that before_id and after_id will not be in the result
func (p *RepoPostgres) List(ctx context.Context, in InputList) (out OutList, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	count := struct {
		Total int64 `db:"total"`
	}{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &count, sqlListApplicantsCount, in.Status)
	if err != nil {
		err = fmt.Errorf("cannot count list of applicants: %w", err)
		return
	}

	if count.Total <= 0 {
		return
	}

	data := make([]Applicant, 0)

	switch {
	case in.BeforeID == 0 && in.AfterID == 0:
		err = sqlx.SelectContext(ctx, p.Config.Connection, &data, sqlListApplicantsWithoutRange, in.Status, in.Limit)

	case in.BeforeID == 0 && in.AfterID != 0:
		err = sqlx.SelectContext(ctx, p.Config.Connection, &data, sqlListApplicantsAfterID, in.AfterID, in.Status, in.Limit)

	case in.BeforeID != 0 && in.AfterID == 0:
		err = sqlx.SelectContext(ctx, p.Config.Connection, &data, sqlListApplicantsBeforeID, in.BeforeID, in.Status, in.Limit)

	case in.AfterID > in.BeforeID:
		// before id 10 yields 9, 8, 7, ... and after id 12 yields 13, 14, ...
		// the two ranges can never intersect, so the query is an error
		err = fmt.Errorf("cannot do range query: after_id %d and before_id %d never intersect", in.AfterID, in.BeforeID)

	default:
		err = sqlx.SelectContext(ctx, p.Config.Connection, &data, sqlListApplicantsInRange, in.AfterID, in.BeforeID, in.Status, in.Limit)
	}

	if err != nil {
		err = fmt.Errorf("cannot get list of applicants: %w", err)
		return
	}

	out = OutList{
		Total:      count.Total,
		Applicants: data,
	}

	return
}

func (p *RepoPostgres) UpdateStatus(ctx context.Context, in InputUpdateStatus) (out OutUpdateStatus, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	data := Applicant{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &data, sqlUpdateApplicantStatus, in.Status, in.UpdatedAt, in.ID)
	if err != nil {
		return
	}

	out = OutUpdateStatus{
		Applicant: data,
	}
	return
}

func (p *RepoPostgres) DelByID(ctx context.Context, in InputDelByID) (out OutDelByID, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	data := Applicant{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &data, sqlSoftDeleteApplicant, in.DeletedAt, in.ID)
	if errors.Is(err, sql.ErrNoRows) {
		out = OutDelByID{
			Success: false,
		}

		err = nil // discard error
		return
	}

	if err != nil {
		return
	}

	out = OutDelByID{
		Success: data.ID == in.ID && data.DeletedAt == in.DeletedAt,
	}
	return
}
