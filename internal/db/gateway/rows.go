package gateway

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Row is one result row addressable by column name and by position.
type Row struct {
	columns []string
	values  []any
}

// Get returns the value of column name, or nil when the row has no such column.
func (r Row) Get(name string) any {
	for i, c := range r.columns {
		if c == name {
			return r.values[i]
		}
	}

	return nil
}

// At returns the value at position i, or nil when i is out of range.
func (r Row) At(i int) any {
	if i < 0 || i >= len(r.values) {
		return nil
	}

	return r.values[i]
}

// String returns the value of column name as string, empty for NULL or missing columns.
func (r Row) String(name string) string {
	s, _ := r.Get(name).(string)

	return s
}

// Columns returns the column names in select order.
func (r Row) Columns() []string {
	return r.columns
}

// Len returns the number of columns.
func (r Row) Len() int {
	return len(r.values)
}

// Exec runs a statement and returns the number of affected rows.
func Exec(db *gorm.DB, stmt string, args ...any) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Exec(stmt, args...)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "exec failed")
	}

	return result.RowsAffected, nil
}

// Query runs a raw select and returns every row fully read.
func Query(db *gorm.DB, stmt string, args ...any) ([]Row, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	rows, err := db.Raw(stmt, args...).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "query failed")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read columns")
	}

	out := make([]Row, 0)

	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err = rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}

		out = append(out, Row{columns: columns, values: values})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate rows")
	}

	return out, nil
}
