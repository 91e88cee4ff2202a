// Package template implements the Mustache-style interpreter used to render
// AI-extracted document data into HTML reports.
//
// Templates are plain text with placeholders; they are never parsed into a
// tree ahead of time. Rendering evaluates section blocks first, then
// substitutes variables.
//
// # Variables
//
//   - {{path}} - Resolve a dot-separated path and insert it HTML-escaped.
//     This is the default, safe form.
//   - {{{path}}} - Same resolution, inserted without escaping. Only for
//     template authors who trust the inserted value's shape.
//   - {{.}} - The current element inside an array section.
//
// Escaping is decided purely by brace count at the call site, never by the
// resolved value's type.
//
// # Sections
//
//   - {{#name}}...{{/name}} - Rendered when name resolves truthy. Arrays
//     render the body once per element (object elements shadow outer fields,
//     primitive elements are exposed as {{.}}); objects render once with
//     their fields merged over the outer context; other truthy values render
//     once against the unchanged context.
//   - {{^name}}...{{/name}} - Inverted: rendered only when name resolves
//     falsy.
//
// Falsy values: nil, false, 0, "", empty array, empty object. Everything
// else is truthy.
//
// # Degradation
//
// Extracted data is inherently partial, so rendering never hard-fails:
// unresolvable paths become empty strings, arrays of objects used as plain
// variables become a bracketed "[N items]" placeholder, and unmatched
// section tags stay literal in the output. Each degrade path emits a
// diagnostic through the engine's logger. A configurable pass cap bounds
// section resolution; exceeding it returns the best-effort partial result
// rather than hanging.
package template
