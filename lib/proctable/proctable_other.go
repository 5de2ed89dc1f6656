// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package proctable

// Table looks processes up in the operating system's process table.
type Table struct {
	// Root is unused on this platform.
	Root string
}

// Find always fails on this platform.
func (Table) Find(name string) (Handle, error) {
	return nil, ErrUnsupported
}
