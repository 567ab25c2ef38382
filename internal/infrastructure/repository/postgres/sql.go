package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func intPtrToNullInt32(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func nullInt32ToIntPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

// availabilityJSON stores a player id to attendance map in a jsonb column.
type availabilityJSON map[string]bool

func (a availabilityJSON) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	raw, err := sonic.Marshal(map[string]bool(a))
	if err != nil {
		return nil, fmt.Errorf("encode availability: %w", err)
	}
	return string(raw), nil
}

func (a *availabilityJSON) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = availabilityJSON{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan availability: unsupported type %T", src)
	}

	out := map[string]bool{}
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("decode availability: %w", err)
		}
	}
	*a = out
	return nil
}
