// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL database behind the storage.SQL backend and
handles schema creation.

# Opening

Open accepts "sqlite" (pure Go, modernc.org/sqlite) or "postgres"
(github.com/lib/pq), pings the connection and creates the schema:

	conn, err := db.Open(db.TypeSQLite, "symptom-ranker.db")
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

SQLite connections are limited to one open connection. An in-memory
database (":memory:") therefore stays a single database for the lifetime
of the pool.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - selection_state: one JSON payload per storage key, upserted on write

The statements use only syntax shared by sqlite and postgres, so the same
schema and queries serve both drivers.
*/
package db
