// Package translate implements the signed translation request protocol.
//
// # Protocol
//
// Each request is an HTTP GET carrying q, from, to, appid, salt and sign. The signature
// is the lowercase hex MD5 of appid+q+salt+secret. The salt is a fresh random UUID per
// request so that (appid, q, salt, sign) never repeats.
//
// The response body is either
//
//	{"error_code": "54003", "error_msg": "Invalid Access Limit"}
//
// or
//
//	{"from": "en", "to": "zh", "trans_result": [{"src": "...", "dst": "..."}]}
//
// Every dst is concatenated in order with no separator.
//
// # Error Handling
//
// Transport failures, non-2xx statuses, API error bodies and malformed bodies all become
// TRANSLATION_FAILED errors. The API's own error_code is kept verbatim in RemoteCode; the
// client does not try to classify it (quota and credential errors share the same shape).
// A call is made exactly once.
package translate
