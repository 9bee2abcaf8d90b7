package utils

import "database/sql"

func SqlNullStringToString(value sql.NullString) string {
	if value.Valid {
		return value.String
	}
	return ""
}

func SqlNullInt64ToInt64Pointer(value sql.NullInt64) *int64 {
	if value.Valid {
		return &value.Int64
	}
	return nil
}

func Int64PointerToSqlNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}
