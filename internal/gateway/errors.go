package gateway

import "errors"

var (
	// ErrIntegrity indicates the remote data does not match what the operation
	// expects, e.g. the task is not in the column it is being reordered in.
	// The operation aborts before writing anything.
	ErrIntegrity = errors.New("integrity violation")

	// ErrPositionalPatch indicates an update that tries to change status or
	// order; those changes go through Move and Reorder
	ErrPositionalPatch = errors.New("status and order cannot be changed by update")
)
