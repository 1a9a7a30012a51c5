// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package ethdb

import "errors"

var ErrNotFound = errors.New("not found")

// Code using batches should try to add this much data to the batch.
// The value was determined empirically.
const IdealBatchSize = 100 * 1024

// Putter wraps the database write operation supported by both batches and regular databases.
type Putter interface {
	Put(key []byte, value []byte) error
}

// Deleter wraps the database delete operation supported by both batches and regular databases.
type Deleter interface {
	Delete(key []byte) error
}

type Reader interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// View is a read-only, forward-only pass over the entries of [lower, upper).
// Keys come out in strictly increasing byte order. A view cannot be rewound;
// Key and Value are only valid until the following Next. Release may be called
// any number of times and must be called on every exit path.
type View interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

// Viewer opens range views. A nil lower bound starts before every key, a nil
// upper bound ends after every key. With consistent set the view observes the
// state as of the call and ignores writes committed afterwards.
type Viewer interface {
	NewView(lower, upper []byte, consistent bool) (View, error)
}

// Snapshot is an immutable state token that any number of views may be opened
// against. All of them observe the same entries.
type Snapshot interface {
	NewView(lower, upper []byte) (View, error)
	Release()
}

type Snapshotter interface {
	NewSnapshot() (Snapshot, error)
}

// Database wraps all database operations. All methods are safe for concurrent use.
type Database interface {
	Putter
	Deleter
	Reader
	Viewer
	Snapshotter
	Close() error
	NewBatch() Batch
}

// Batch is a write-only database that commits changes to its host database
// when Write is called. Batch cannot be used concurrently.
type Batch interface {
	Putter
	Deleter
	ValueSize() int // amount of data in the batch
	Write() error
	// Reset resets the batch for reuse
	Reset()
}
