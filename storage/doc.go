// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage provides the key/value persistence used by the selection
store.

The Storage interface mirrors browser localStorage: string keys, string
values, and a lookup that distinguishes "absent" from "failed".

# Backends

  - Memory: process memory with an optional byte quota (ErrQuotaExceeded)
  - File: a single JSON object on disk, rewritten atomically
  - SQL: the selection_state table, see package db

WithPrefix wraps any backend so that several owners can share it without
key collisions. The HTTP server uses it to give each session its own
namespace inside one database.
*/
package storage
