package models

// All lists every model migrated at startup.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Invoice{},
		&Revenue{},
		&User{},
		&Session{},
	}
}
