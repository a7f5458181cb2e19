// Package ocr defines the text-recognition collaborator used by the
// numeric-area extractor, and provides a Tesseract-backed implementation.
//
// The engine never depends on a concrete OCR engine: it consumes the
// Recognizer interface, which accepts a bitmap and language hint and
// returns recognized text plus word boxes. Tests substitute a fake
// Recognizer; production wiring uses Tesseract via gosseract.
//
// # Requirements
//
// The Tesseract implementation requires a system Tesseract installation
// with the requested language data (typically "eng"; plan sheets with
// Arabic unit notation additionally want "ara").
package ocr
