// Package evidence re-anchors LLM-extracted claims to precise, re-displayable
// locations inside source documents: a page plus bounding box for PDF
// technical reports, or a DOM element/section anchor for HTML regulatory
// filings. The UI draws a highlight from the resulting region and jumps the
// viewer to the exact supporting text.
//
// This package contains domain types, interfaces, and the pure matching and
// projection logic following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, gemini/, goquery/).
package evidence
