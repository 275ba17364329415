// Package menu turns the dormitory cafeteria's schedule page into meal
// records.
//
// The page is served in a legacy Korean encoding that is not always
// declared correctly, so the body is force-decoded as CP949 when the
// Content-Type header or an early meta tag mentions euc-kr, ks_c_5601 or
// cp949. Decoding happens exactly once, before parsing.
//
// Each row of the schedule table becomes one Record. Cell text fragments are
// trimmed and joined with "&"; a cell without text, or a missing cell, is
// reported as Sentinel. Nothing in this package performs I/O.
package menu
