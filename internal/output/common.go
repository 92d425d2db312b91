package output

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "sequence_id\tchain\tvariant\tscore\tstart\tend\tpositions\trec_scores\tcon_lengths\tcon_scores"
