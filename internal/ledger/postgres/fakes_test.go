package postgres

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow feeds canned values into a QueryRow scan.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(dest, r.values)
}

// fakeRows feeds canned rows into a Query result iteration.
type fakeRows struct {
	rows    [][]any
	cursor  int
	scanErr error
	iterErr error
}

func (r *fakeRows) Next() bool {
	if r.cursor >= len(r.rows) {
		return false
	}
	r.cursor++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return scanInto(dest, r.rows[r.cursor-1])
}

func (r *fakeRows) Err() error { return r.iterErr }

func (r *fakeRows) Close() {}

func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *fakeRows) Values() ([]any, error) { return nil, nil }

func (r *fakeRows) RawValues() [][]byte { return nil }

func (r *fakeRows) Conn() *pgx.Conn { return nil }

// fakeBatchResults replays one canned result per queued statement.
type fakeBatchResults struct {
	execErrs []error
	cursor   int
	closeErr error
}

func (b *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	if b.cursor >= len(b.execErrs) {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected Exec call %d", b.cursor)
	}
	err := b.execErrs[b.cursor]
	b.cursor++
	return pgconn.NewCommandTag("INSERT 0 1"), err
}

func (b *fakeBatchResults) Query() (pgx.Rows, error) { return nil, nil }

func (b *fakeBatchResults) QueryRow() pgx.Row { return nil }

func (b *fakeBatchResults) Close() error { return b.closeErr }

func scanInto(dest, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan destination count %d does not match value count %d", len(dest), len(values))
	}
	for i, value := range values {
		target := reflect.ValueOf(dest[i]).Elem()
		if value == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(value))
	}
	return nil
}
