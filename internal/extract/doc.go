// Package extract turns OCR output into a single numeric plot-area value.
//
// Plan sheets print each plot's area inside its cell, usually with a unit
// ("240 m²") but often mangled by recognition: dropped decimal points,
// comma-for-point substitutions, or the plot's house number sitting next
// to the area. The extractor copes with this through four strictly
// prioritized candidate tiers; see Extractor.Area.
//
// Extraction is a best-effort enhancement inside a larger interactive
// flow: a miss means the label's area stays unset and the user fills it in
// manually. Nothing in this package treats "no result" as zero.
package extract
