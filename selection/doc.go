// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package selection holds a user's selected symptoms and their reported
onsets.

# Persistence

The whole selection is stored as one JSON record under
models.StorageKey:

	{"selected":["fever","cough"],"timeline":{"fever":2}}

Each mutation that changes the selection writes the record through to the
backing storage.Storage. Writes are best effort: a failed write (quota
exhausted, storage unavailable) is logged and the in-memory selection
stays authoritative. Open restores the record, treating a missing or
malformed record as an empty selection.

# Reported Onsets

Only symptoms whose days-ago was set explicitly appear in the timeline.
List reports them with Reported set; the others carry DaysAgo 0 and
Reported false, which the scoring engine treats as "on time".
*/
package selection
