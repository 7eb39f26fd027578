package entity

// Document is a fetched publication document prepared for AI review.
// It lives only for the duration of one run; nothing about it is
// persisted.
type Document struct {
	// URL the document was fetched from.
	URL string

	// Raw is the document body as received.
	Raw []byte

	// Base64 is the standard-encoded body for model transport.
	Base64 string

	// Text is the best-effort extracted plain text. Empty when text
	// extraction failed; backends that accept the encoded PDF can
	// still use the document.
	Text string
}
