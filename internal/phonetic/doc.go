// Package phonetic looks up per-word IPA transcriptions from a dictionary API.
//
// Lookups are best effort. A word the dictionary does not know, a non-2xx status, a
// transport error or an unexpected body all produce the NoTranscription sentinel for
// that word; nothing is returned as an error and one failed word never affects another.
//
// LookupAll issues lookups concurrently (bounded by WithConcurrency) and reassembles the
// results in input order, then applies Simplify, a small cosmetic substitution table that
// maps a few IPA symbols to ASCII-friendlier forms.
package phonetic
