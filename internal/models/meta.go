package models

// Metadata keys written by the new-stock engine. The key strings are the
// external store representation and must stay stable across deployments.
const (
	// MetaIsNew marks the classification outcome. Note the inverted
	// semantics: in-range items end up with the key deleted, out-of-range
	// items end up with "yes". The listing query and visibility gate are
	// written against this behavior.
	MetaIsNew = "_nsvc_is_new"

	// Processed markers, one per item kind. Idempotence guard: once set,
	// the on-save classifier skips the item entirely.
	MetaSimpleProcessed    = "_new_simple_processed"
	MetaVariationProcessed = "_new_variation_processed"

	// MetaManualKeep pins an item against sweep expiry for exactly one
	// sweep pass.
	MetaManualKeep = "_nsvc_manual_keep"

	// MetaExcludeVariation opts a variation out of classification. Set by
	// an external tool, never written here.
	MetaExcludeVariation = "_vaspfw_exclude_variation"
)

// MetaYes is the affirmative metadata value. Anything else, including an
// absent key, reads as not set.
const MetaYes = "yes"

// MetaNo is the transient negative value the classifier writes and
// immediately overwrites.
const MetaNo = "no"

// CategorySlug identifies the tracked category.
const CategorySlug = "new-stock"

// Settings keys for the persisted classification range.
const (
	SettingStartDate = "nsvc_start_date"
	SettingEndDate   = "nsvc_end_date"
)

// Flag is the tri-state reading of a yes/absent metadata value.
type Flag int

const (
	FlagUnset Flag = iota
	FlagYes
	FlagNo
)

// FlagOf converts a stored metadata value to its tri-state reading.
func FlagOf(value string) Flag {
	switch value {
	case MetaYes:
		return FlagYes
	case MetaNo:
		return FlagNo
	default:
		return FlagUnset
	}
}

// IsYes reports whether a stored metadata value is affirmative.
func IsYes(value string) bool {
	return FlagOf(value) == FlagYes
}
