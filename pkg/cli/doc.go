// Package cli provides the command-line interface for reportd.
//
// The cli package implements the commands for rendering document reports:
//   - render: Render extracted document content into report HTML
//   - types: List document types with a registered report template
//   - version: Show reportd version
//
// The render command reads raw extraction output (text that contains a JSON
// object) from a file or stdin, renders it with the template registered for
// the given document type, and writes the HTML to stdout or a file. Content
// that cannot be parsed or has no registered template still produces output;
// rendering degrades to a generic report instead of failing.
//
// Usage:
//
//	reportd render --type Inspection-Reports --data extraction.txt -o report.html
//	reportd render -t Disclosures -d - < extraction.txt
//	reportd types
package cli
