package multidb

import (
	"io"

	"github.com/jmoiron/sqlx"
)

// MultiDB holds every SQL connection declared in configuration, keyed by label.
type MultiDB interface {
	io.Closer

	GetSqlx(driver Driver, key string) (*sqlx.DB, error)
}
