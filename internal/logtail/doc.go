// Package logtail reads and parses the tail of the session log.
//
// # Overview
//
// Mosaic logs through log/slog's text handler into a file, because the
// terminal belongs to the UI. The debug overlay (toggled with L) shows the
// most recent records; this package supplies them.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines of a file in one
// pass with O(maxLines) memory. A missing file yields no lines and no
// error, which is the normal state before the logger has written anything.
//
//	lines, err := logtail.Read(logger.Path(), 200)
//
// # Parsing
//
// Parse splits a text handler record into time, level, message and the
// remaining key=value attributes, unquoting quoted values:
//
//	time=... level=INFO msg="grid grew" session=4b1c component=grid count=24
//
// Lines that are not records (a stray panic trace, for example) are kept
// whole as the message so nothing disappears from the overlay.
//
// FilterLevel drops entries below a minimum level; the overlay cycles it.
package logtail
