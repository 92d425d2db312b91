// Package writers turns placements into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (pretty blocks, TSV/JSON/JSONL/FASTA).
//   - The placement kernel stays domain-only; the app only orchestrates.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
