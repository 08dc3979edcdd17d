// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package precautions maps canonical symptoms to general advisory text.
// Lookups are total: unknown symptoms get a single "consult a physician"
// notice.
package precautions
