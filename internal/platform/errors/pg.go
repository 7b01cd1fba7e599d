package errors

// Postgres helpers: mapping pgx errors onto ErrorCode, lifting field names
// out of constraint metadata, and deciding retry worthiness

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes this project reacts to
const (
	sqlstateUniqueViolation      = "23505"
	sqlstateForeignKeyViolation  = "23503"
	sqlstateNotNullViolation     = "23502"
	sqlstateCheckViolation       = "23514"
	sqlstateStringTruncation     = "22001"
	sqlstateInvalidText          = "22P02"
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
	sqlstateLockNotAvailable     = "55P03"
	sqlstateReadOnlyTx           = "25006"
	sqlstateCannotConnectNow     = "57P03" // server still starting up
)

// sqlstateCodes maps the SQLSTATEs above onto project codes; anything not
// listed classifies as a generic database fault
var sqlstateCodes = map[string]ErrorCode{
	sqlstateUniqueViolation: ErrorCodeDuplicateKey,

	// the input referenced a row that is not there
	sqlstateForeignKeyViolation: ErrorCodeInvalidArgument,

	sqlstateNotNullViolation: ErrorCodeValidation,
	sqlstateCheckViolation:   ErrorCodeValidation,
	sqlstateStringTruncation: ErrorCodeInvalidArgument,
	sqlstateInvalidText:      ErrorCodeInvalidArgument,

	// server-side contention, retry may clear it
	sqlstateSerializationFailure: ErrorCodeDB,
	sqlstateDeadlockDetected:     ErrorCodeDB,
	sqlstateLockNotAvailable:     ErrorCodeDB,

	sqlstateReadOnlyTx:       ErrorCodeUnavailable,
	sqlstateCannotConnectNow: ErrorCodeUnavailable,
}

// ExtractPgError returns (*pgconn.PgError, true) when the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pge *pgconn.PgError
	if stderrs.As(Root(err), &pge) {
		return pge, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, code string) bool {
	pge, ok := ExtractPgError(err)
	return ok && pge.Code == code
}

// Predicates for the constraint classes repos actually branch on.

// IsDuplicateKey reports a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, sqlstateUniqueViolation) }

// IsForeignKeyViolation reports a foreign key constraint violation
func IsForeignKeyViolation(err error) bool { return IsSQLState(err, sqlstateForeignKeyViolation) }

// IsNotNullViolation reports a not-null constraint violation
func IsNotNullViolation(err error) bool { return IsSQLState(err, sqlstateNotNullViolation) }

// IsCheckViolation reports a check constraint violation
func IsCheckViolation(err error) bool { return IsSQLState(err, sqlstateCheckViolation) }

// IsSerializationFailure reports a serialization failure
func IsSerializationFailure(err error) bool { return IsSQLState(err, sqlstateSerializationFailure) }

// IsDeadlock reports a detected deadlock
func IsDeadlock(err error) bool { return IsSQLState(err, sqlstateDeadlockDetected) }

// IsLockNotAvailable reports a lock acquisition failure
func IsLockNotAvailable(err error) bool { return IsSQLState(err, sqlstateLockNotAvailable) }

// IsConnectionUnavailable reports the server refusing connections for now
func IsConnectionUnavailable(err error) bool { return IsSQLState(err, sqlstateCannotConnectNow) }

// DBErrorCode maps a Postgres error onto an ErrorCode.
// !ok means err was no PgError at all; callers fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	var pge *pgconn.PgError
	if !stderrs.As(err, &pge) {
		return ErrorCodeUnknown, false
	}
	if code, ok := sqlstateCodes[pge.Code]; ok {
		return code, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with its mapped ErrorCode and message.
// nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresf formats the message before wrapping
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// fieldFromPgMeta lifts a usable field name out of PgError metadata.
// ColumnName wins; otherwise the last token of the constraint name serves
// (contact_phones_raw yields raw). A bare "key" token is useless noise
func fieldFromPgMeta(pge *pgconn.PgError) string {
	if col := strings.TrimSpace(pge.ColumnName); col != "" {
		return col
	}
	c := strings.TrimSpace(pge.ConstraintName)
	if c == "" {
		return ""
	}
	tok := c
	if i := strings.LastIndex(c, "_"); i >= 0 && i+1 < len(c) {
		tok = c[i+1:]
	}
	if tok == "key" {
		return ""
	}
	return tok
}

// AttachFieldFromPg enriches an error with a field name from the PgError
// metadata. Errors carrying neither a column nor a constraint pass through
func AttachFieldFromPg(err error) error {
	var pge *pgconn.PgError
	if !stderrs.As(Root(err), &pge) {
		return err
	}
	if f := fieldFromPgMeta(pge); f != "" {
		return WithField(err, f)
	}
	return err
}

// FromPostgresWithField wraps like FromPostgres, then tries to attach a
// field name discoverable from the PgError metadata
func FromPostgresWithField(err error, msg string) error {
	return AttachFieldFromPg(FromPostgres(err, msg))
}

// retryTexts are driver strings seen on commit/abort and lock or timeout
// conditions where no structured PgError survives
var retryTexts = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"serialization failure",
	"canceling statement due to statement timeout",
	"canceling statement due to lock timeout",
	"could not obtain lock on row",
	"terminating connection due to administrator command",
}

// IsRetryable reports whether a database error is transient enough to retry.
// Structured *pgconn.PgError codes rule when present; otherwise the raw
// error text decides
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// local cancellations and deadlines are the caller's problem, never retried here
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	cause := Root(err)

	var pge *pgconn.PgError
	if stderrs.As(cause, &pge) {
		switch pge.Code {
		case sqlstateSerializationFailure, sqlstateDeadlockDetected, sqlstateLockNotAvailable:
			return true
		}
		return false
	}

	text := strings.ToLower(cause.Error())
	for _, pat := range retryTexts {
		if strings.Contains(text, pat) {
			return true
		}
	}
	return false
}
