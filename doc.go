// Package barwatch reconciles a custodian's declared physical silver
// inventory (a "bar list" document) against the quantity of silver an
// exchange-traded product is contractually obligated to hold, and tracks
// how that inventory changes, bar by bar, across repeated snapshots.
//
// The core functionalities include:
//   - Bar-List Parsing: recovering canonical bar records from the loosely
//     structured, provider-specific text layouts of bar-list documents,
//     using per-format anchor-token heuristics.
//   - Aggregation: reducing a bar set into summary statistics (counts,
//     gross/fine ounce totals, per-vault and per-refiner breakdowns).
//   - Verification: comparing aggregated physical holdings against the
//     expected troy-ounce figure derived from fund metrics, with a fixed
//     tolerance-banded status taxonomy, plus internal-consistency checks
//     against the totals the document itself declares.
//   - Bar History: a persistent per-fund store of every bar identity ever
//     observed, updated snapshot by snapshot, from which each new snapshot
//     is classified into added, removed, returned, transferred and
//     unchanged bars, including lifetime re-entry counts.
//   - Data Persistence: human-readable JSON stores and reports intended to
//     be read back by the same process on its next invocation.
//
// This package serves as the foundational logic for the `bw` command-line
// tool. It performs no network I/O and decodes no binary document format:
// documents arrive as per-page plain text extracted by an external
// collaborator.
package barwatch
