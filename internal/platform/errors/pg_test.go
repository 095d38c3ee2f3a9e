package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		err   error
		code  ErrorCode
		field string
	}{
		{
			name:  "duplicate admin email",
			err:   &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"},
			code:  ErrorCodeDuplicateKey,
			field: "email",
		},
		{
			name:  "rating out of range",
			err:   &pgconn.PgError{Code: "23514", TableName: "reviews", ConstraintName: "reviews_rating_check"},
			code:  ErrorCodeValidation,
			field: "rating",
		},
		{
			name: "named table constraint has no column",
			err:  &pgconn.PgError{Code: "23514", TableName: "reviews", ConstraintName: "reviews_moderation_stamp"},
			code: ErrorCodeValidation,
		},
		{
			name:  "missing linked user",
			err:   &pgconn.PgError{Code: "23503", TableName: "registrations", ConstraintName: "registrations_user_id_fkey"},
			code:  ErrorCodeInvalidArgument,
			field: "user_id",
		},
		{
			name:  "column reported directly",
			err:   &pgconn.PgError{Code: "23502", ColumnName: "college"},
			code:  ErrorCodeValidation,
			field: "college",
		},
		{name: "bad uuid text", err: &pgconn.PgError{Code: "22P02"}, code: ErrorCodeInvalidArgument},
		{name: "standby", err: &pgconn.PgError{Code: "57P03"}, code: ErrorCodeUnavailable},
		{name: "unmapped state", err: &pgconn.PgError{Code: "42P01", TableName: "reviews", ConstraintName: "reviews_rating_check"}, code: ErrorCodeDB},
		{name: "not postgres", err: stderrs.New("conn reset"), code: ErrorCodeDB},
		{
			name:  "wrapped by the adapter",
			err:   fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_google_id_key"}),
			code:  ErrorCodeDuplicateKey,
			field: "google_id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FromPostgres(tc.err, "failed to save")
			e, ok := As(got)
			if !ok {
				t.Fatalf("FromPostgres returned foreign error %T", got)
			}
			if e.Code() != tc.code || e.Field() != tc.field {
				t.Fatalf("code=%d field=%q, want %d %q", e.Code(), e.Field(), tc.code, tc.field)
			}
			if !stderrs.Is(got, tc.err) {
				t.Fatalf("cause lost")
			}
			if WireFrom(got).Message != "failed to save" {
				t.Fatalf("message = %q", WireFrom(got).Message)
			}
		})
	}
}

func TestFromPostgres_Nil(t *testing.T) {
	t.Parallel()
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil in, non nil out")
	}
}

func TestSQLStatePredicates(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	if !IsDuplicateKey(dup) || IsDuplicateKey(fk) {
		t.Fatalf("IsDuplicateKey")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(check) {
		t.Fatalf("IsForeignKeyViolation")
	}
	if !IsCheckViolation(check) || IsCheckViolation(stderrs.New("23514")) {
		t.Fatalf("IsCheckViolation")
	}
	if IsDuplicateKey(nil) {
		t.Fatalf("nil is not a duplicate")
	}
}
