package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/retention/internal/config"
)

// StorageFlag overrides the configured storage driver.
type StorageFlag string

var (
	_ pflag.Value = (*StorageFlag)(nil)

	allStorageDrivers = []StorageFlag{config.DriverMemory, config.DriverSQLite, config.DriverMySQL, config.DriverPostgres}
)

// Set implements pflag.Value.
func (s *StorageFlag) Set(v string) error {
	for _, driver := range allStorageDrivers {
		if string(driver) == v {
			*s = driver
			return nil
		}
	}
	names := make([]string, 0, len(allStorageDrivers))
	for _, driver := range allStorageDrivers {
		names = append(names, string(driver))
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

// String implements pflag.Value.
func (s *StorageFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *StorageFlag) Type() string {
	return "StorageFlag"
}

// apply replaces cfg's driver when the flag was given.
func (s *StorageFlag) apply(cfg *config.Config) {
	if s != nil && *s != "" {
		cfg.Storage.Driver = string(*s)
	}
}
