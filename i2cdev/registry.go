// Copyright 2026 The Hygrochip Linux Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cdev

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Registry enumerates the system's I²C bus registry. Each entry identifier
// doubles as the device node name under /dev. The interface exists so tests
// can run against an in-memory registry instead of sysfs.
type Registry interface {
	// Entries returns the identifiers of all registered buses.
	Entries() ([]string, error)
	// Name returns the raw content of the descriptor file for entry.
	Name(entry string) (string, error)
}

const sysfsDir = "/sys/class/i2c-dev"

type sysfsRegistry string

// SysfsRegistry returns the kernel's registry at /sys/class/i2c-dev.
func SysfsRegistry() Registry {
	return sysfsRegistry(sysfsDir)
}

func (d sysfsRegistry) Entries() ([]string, error) {
	ents, err := os.ReadDir(string(d))
	if err != nil {
		return nil, fmt.Errorf("i2cdev: reading directory %s: %w", string(d), err)
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names, nil
}

func (d sysfsRegistry) Name(entry string) (string, error) {
	path := filepath.Join(string(d), entry, "name")
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("i2cdev: reading %s: %w", path, err)
	}
	return string(b), nil
}

// Locate resolves a symbolic bus name to a registry entry identifier.
// Hidden entries (leading dot) are skipped. The first entry whose
// descriptor matches wins; if none matches after a full enumeration, the
// error is a NotFoundError. Any registry read failure is returned as is.
func Locate(reg Registry, name string) (string, error) {
	entries, err := reg.Entries()
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry, ".") {
			continue
		}
		content, err := reg.Name(entry)
		if err != nil {
			return "", err
		}
		if nameMatches(content, name) {
			return entry, nil
		}
	}
	return "", &NotFoundError{Name: name}
}

// nameMatches reports whether the descriptor content equals want. A single
// trailing newline in the descriptor is tolerated; anything else, including
// other whitespace, is a mismatch.
func nameMatches(content, want string) bool {
	switch len(content) {
	case len(want):
		return content == want
	case len(want) + 1:
		return content[len(want)] == '\n' && content[:len(want)] == want
	}
	return false
}
