// Package repository reads recruitment postings from the relational store.
package repository

import (
	"context"

	"github.com/slen516-afk/fraudboard/internal/domain/model"
)

// Store provides access to the postings table.
type Store interface {
	// Fetch reads every posting in one query.
	// A missing required column is reported as a *model.SchemaError.
	Fetch(ctx context.Context) (model.Table, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Insert writes records in a single transaction and returns how many were written.
	Insert(ctx context.Context, records []model.Record) (int, error)

	// Close releases the underlying connections.
	Close() error
}
