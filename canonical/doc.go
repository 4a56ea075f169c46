// Package canonical provides a total order over JSON values, with optional
// treatment of sequences as unordered sets up to a given container depth.
//
// Values are ordered first by kind rank (null < boolean < integer < float <
// string < sequence < map) and then by content. The set depth counts
// containers from the value being compared: with a set depth of 1 only the
// outermost sequence is sorted before comparison, with 2 the sequences one
// level further in are sorted too, and with Unbounded every sequence is.
// Map members are always compared in name order, so two maps holding the
// same members compare equal regardless of insertion order.
//
// # Usage
//
//	c, err := canonical.Compare([]any{1, 10}, []any{10, 1}, 0) // -1
//	c, err = canonical.Compare([]any{1, 10}, []any{10, 1}, 1)  // 0
//
// KeyOf returns a reusable Key for repeated comparisons. Key.String gives a
// deterministic encoding suitable for use as a map key.
package canonical
