package database

import (
	"database/sql"
	"strconv"
)

// Setting reads one system_settings value. ok is false when the key is
// not present.
func (db *DB) Setting(key string) (value string, ok bool, err error) {
	err = db.QueryRow(
		`SELECT setting_value FROM system_settings WHERE setting_key = $1`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SettingFloat reads a numeric setting, falling back to def when the key
// is absent or not a number.
func (db *DB) SettingFloat(key string, def float64) (float64, error) {
	raw, ok, err := db.Setting(key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, nil
	}
	return f, nil
}

// PutSetting inserts or replaces one setting.
func (db *DB) PutSetting(key, value string) error {
	_, err := db.Exec(
		`INSERT INTO system_settings (setting_key, setting_value)
		 VALUES ($1, $2)
		 ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = NOW()`,
		key, value,
	)
	return err
}
