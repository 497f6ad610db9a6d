package kv

import "fmt"

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open returns a Store for the named driver together with a release func.
func Open(driver, dbPath string) (Store, func() error, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case DriverSQLite, "":
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported kv driver %q", driver)
	}
}
