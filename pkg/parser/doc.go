// Package parser extracts structured fields from raw tool output and
// configuration files.
//
// The text helpers are pure and never fail: a missing marker or an
// unparseable date is reported as "absent" through a boolean, and callers
// drop the field.
//
//	digest, ok := parser.ValueAfterPrefix(line, "SHA-1 hash: ")
//	when, ok := parser.NormalizeDate("Jan  5 10:00:00 2023 GMT")
//	// when == "2023-01-05 10:00:00 GMT"
//
// The Parser type splits text or files into lines and key/value maps with
// configurable delimiters, comment handling, and value trimming:
//
//	p := parser.NewParser(parser.WithKVDelimiter("="))
//	settings := p.Map(cupsctlOutput)
//	servers, err := p.FileLines("/etc/ntp.conf")
package parser
