// Package pdf defines the narrow document capability the cleaner needs
// (open, page bounds, region redaction, page deletion, save, close) and a
// backend built on pdfcpu.
package pdf
