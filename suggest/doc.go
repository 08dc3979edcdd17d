// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package suggest provides substring autocomplete over the symptom
// vocabulary. It is a display aid: results are not normalized or validated,
// and callers should hide the suggestion list for an empty result.
package suggest
