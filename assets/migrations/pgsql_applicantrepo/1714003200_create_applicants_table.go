package pgsql_applicantrepo

import (
	"context"
	"fmt"
)

// CreateApplicantsTable1714003200 is struct to define a migration with ID 1714003200_create_applicants_table
type CreateApplicantsTable1714003200 struct{}

// ID return unique identifier for each migration. The prefix is unix time when this migration is created.
func (m CreateApplicantsTable1714003200) ID(ctx context.Context) string {
	return fmt.Sprintf("%d_%s.sql", 1714003200, "create_applicants_table")
}

// SequenceNumber return current time when the migration is created,
// this useful to see the current status of the migration.
func (m CreateApplicantsTable1714003200) SequenceNumber(ctx context.Context) int {
	return 1714003200
}

// Up return sql migration for sync database
func (m CreateApplicantsTable1714003200) Up(ctx context.Context) (sql string, err error) {
	sql = `
CREATE TABLE IF NOT EXISTS applicants (
	id BIGINT NOT NULL PRIMARY KEY,
	email VARCHAR NOT NULL,
	name VARCHAR NOT NULL,
	cpf VARCHAR NOT NULL,
	registration_no VARCHAR NOT NULL DEFAULT '',
	age BIGINT NOT NULL DEFAULT 0,
	gender VARCHAR NOT NULL DEFAULT '',
	category VARCHAR NOT NULL DEFAULT '',
	address VARCHAR NOT NULL DEFAULT '',
	mobile_no VARCHAR NOT NULL DEFAULT '',
	father_mother_name VARCHAR NOT NULL DEFAULT '',
	father_mother_occupation VARCHAR NOT NULL DEFAULT '',
	present_institute VARCHAR NOT NULL DEFAULT '',
	areas_of_training VARCHAR NOT NULL DEFAULT '',
	present_semester VARCHAR NOT NULL DEFAULT '',
	last_semester_sgpa VARCHAR NOT NULL DEFAULT '',
	percentage_in_10_plus_2 VARCHAR NOT NULL DEFAULT '',
	designation VARCHAR NOT NULL DEFAULT '',
	section VARCHAR NOT NULL DEFAULT '',
	location VARCHAR NOT NULL DEFAULT '',
	status VARCHAR NOT NULL DEFAULT 'Pending',
	term VARCHAR NOT NULL DEFAULT '',
	quota_category VARCHAR NOT NULL DEFAULT '',
	details JSONB NOT NULL DEFAULT '{}',
	created_at BIGINT NOT NULL DEFAULT 0,
	updated_at BIGINT NOT NULL DEFAULT 0,
	deleted_at BIGINT NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX unique_idx_applicants_email ON applicants (LOWER(email)) WHERE deleted_at = 0;
CREATE INDEX idx_applicants_status ON applicants (status) WHERE deleted_at = 0;
`

	return
}

// Down return sql migration for rollback database
func (m CreateApplicantsTable1714003200) Down(ctx context.Context) (sql string, err error) {
	sql = `DROP TABLE IF EXISTS applicants;`
	return
}
