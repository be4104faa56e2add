// Package repository holds definitions shared by the entity store drivers.
package repository

import "errors"

// ErrNotFound is returned by store drivers when a looked up entity does not exist.
var ErrNotFound = errors.New("entity not found")
