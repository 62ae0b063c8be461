// Package filter selects table rows with expr-lang expressions.
//
// Every column of a row is a variable, with characters that are not valid in
// identifiers replaced by underscores:
//
//	age == "Baby" and contact_address_state == "WA"
//	hasTag("playful") and daysSince(published_at) < 30
//	type == "Cat" and containsText(name, "mochi")
//	anyEqual(tags, "friendly") or get("breeds.primary") == "Siamese"
//
// Helpers: get, has, hasTag, containsText, anyEqual, hasPrefix, hasSuffix,
// lower, upper, daysSince, parseDate, daysAgo and now. String helpers ignore
// case. The contains, startsWith and endsWith operators are case-sensitive:
//
//	name startsWith "Mo"
package filter
