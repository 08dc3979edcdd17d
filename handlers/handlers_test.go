// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/danielhkuo/symptom-ranker/cliparse"
	"github.com/danielhkuo/symptom-ranker/storage"
	"github.com/danielhkuo/symptom-ranker/testutil"
)

type testEnv struct {
	cfg      cliparse.Config
	store    *storage.SQL
	registry *SessionRegistry
	sessions *SessionHandler
	symptoms *SymptomHandler
	catalog  *CatalogHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.GetTestConfig()
	store := testutil.SetupTestStorage(t)
	catalog := testutil.NewTestCatalog()
	registry := NewSessionRegistry(catalog, store, cfg)

	return &testEnv{
		cfg:      cfg,
		store:    store,
		registry: registry,
		sessions: NewSessionHandler(registry, cfg),
		symptoms: NewSymptomHandler(registry, cfg),
		catalog:  NewCatalogHandler(catalog),
	}
}
