// Package builder transforms a finished transcript into the two session
// artifacts: the plain-text interview record and the deduplicated,
// prioritized requirements list. Given an identical transcript and identical
// classification rules the output is byte-identical except for the
// generation timestamp.
package builder
