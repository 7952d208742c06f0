package sqlite

import (
	"database/sql"
	"errors"
)

// isNoRows checks if an error indicates no rows were found.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
