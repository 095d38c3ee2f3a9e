package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the services branch on
const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
	sqlNotNullViolation    = "23502"
	sqlCheckViolation      = "23514"
	sqlStringTooLong       = "22001"
	sqlBadTextValue        = "22P02"
	sqlReadOnlyTx          = "25006"
	sqlCannotConnectNow    = "57P03"
)

var codeBySQLState = map[string]ErrorCode{
	sqlUniqueViolation: ErrorCodeDuplicateKey,
	// a dangling reference means the request named a row that is gone
	sqlForeignKeyViolation: ErrorCodeInvalidArgument,
	sqlNotNullViolation:    ErrorCodeValidation,
	sqlCheckViolation:      ErrorCodeValidation,
	sqlStringTooLong:       ErrorCodeInvalidArgument,
	sqlBadTextValue:        ErrorCodeInvalidArgument,
	sqlReadOnlyTx:          ErrorCodeUnavailable,
	sqlCannotConnectNow:    ErrorCodeUnavailable,
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

func hasSQLState(err error, state string) bool {
	pe, ok := pgError(err)
	return ok && pe.Code == state
}

// IsDuplicateKey reports a unique violation, e.g. a second admin with the same email
func IsDuplicateKey(err error) bool { return hasSQLState(err, sqlUniqueViolation) }

// IsForeignKeyViolation reports a reference to a missing row
func IsForeignKeyViolation(err error) bool { return hasSQLState(err, sqlForeignKeyViolation) }

// IsCheckViolation reports a row rejected by a table check
func IsCheckViolation(err error) bool { return hasSQLState(err, sqlCheckViolation) }

// FromPostgres wraps err under msg with a code derived from its SQLSTATE
// non postgres errors become ErrorCodeDB, client facing 4xx codes name the column when known
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	pe, ok := pgError(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	code, mapped := codeBySQLState[pe.Code]
	if !mapped {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if f := columnOf(pe); f != "" && code.Status() < 500 {
		out = WithField(out, f)
	}
	return out
}

// columnOf names the column a constraint error is about
// generated constraint names look like reviews_rating_check or users_email_key
func columnOf(pe *pgconn.PgError) string {
	if pe.ColumnName != "" {
		return pe.ColumnName
	}
	name := pe.ConstraintName
	if pe.TableName == "" || !strings.HasPrefix(name, pe.TableName+"_") {
		return ""
	}
	name = strings.TrimPrefix(name, pe.TableName+"_")
	for _, suffix := range []string{"_check", "_fkey", "_key"} {
		if col, ok := strings.CutSuffix(name, suffix); ok && col != "" {
			return col
		}
	}
	return ""
}
