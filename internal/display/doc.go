// Package display formats count results for the output stream.
//
// Result lines list the active metrics in a fixed order, separated by single
// spaces, followed by the file name:
//
//	<lines> <words> <bytes> <chars> <name>
//
// Only fields whose metric is enabled in models.Options are printed. The name
// is omitted for standard input ("-"). Directory tokens print as
//
//	dir <name>
//
// All functions accept io.Writer interfaces and write a whole line per call.
package display
