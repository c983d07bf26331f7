// Package schedule decides when knockout badges are rebuilt.
//
// Four triggers lead to a rebuild of every container:
//   - Ready: once, when the document is first available
//   - FontsReady: once, when font loading finishes, successfully or not,
//     since measuring with a fallback font gives wrong metrics
//   - Resize: debounced on the trailing edge (80ms by default); layout
//     inputs such as stylesheets and config changed
//   - Mutate: a data attribute of a container changed
//
// Rebuilds never overlap. A rebuild in progress always runs to completion.
package schedule
