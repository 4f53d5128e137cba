// Package pipeline orchestrates one screen capture: OCR, text filtering, translation and
// per-word phonetic lookup, assembled into a single Result.
//
// # Entry Points
//
//   - RunPreview: OCR and normalization only, no remote calls.
//   - RunFull: the complete run, returning a Result with a Status.
//
// # Flow
//
//	region -> OCR -> Normalize -> ExtractLetters -> empty? -> StatusEmptyText
//	                                             \-> Translate  \
//	                                              -> LookupAll  -> StatusOK
//
// Translation and the phonetic batch are independent and run concurrently. Neither
// cancels the other: the run completes or fails as a whole. OCR and translation failures
// end the run with StatusFailed; phonetic failures never do.
//
// # Sessions
//
// Session holds the single region/result pair of a capture flow and rejects overlapping
// runs with a BUSY error, mirroring a confirm button that is disabled while a run is in
// flight.
package pipeline
