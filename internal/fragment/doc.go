// Package fragment reads, generates and patches Codex config.toml fragments.
//
// A fragment is a top-level block of key = value lines followed by zero or
// more bracketed table sections. The functions here are plain text
// transforms: they never fail, and text they do not recognize is passed
// through byte for byte so hand-edited files survive a round trip.
//
// Base URL lookups are deliberately not section-aware (the first textual
// base_url wins) while model lookups only consider the top-level block.
// Existing persisted fragments depend on both behaviors.
package fragment
