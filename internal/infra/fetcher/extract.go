package fetcher

// Extraction helpers for INSPIRE's list-of-object metadata fields.
// Fields like titles, abstracts and arxiv_eprints hold zero or more
// objects; only the first entry is used. Every helper returns ok=false
// on any shape mismatch (absent field, empty list, non-list value,
// list of non-objects, missing key, non-string value) instead of
// failing, because origin records are not under our control.

const arxivPDFBaseURL = "https://arxiv.org/pdf/"

// firstEntry returns the first object of a list-of-objects field.
func firstEntry(v any) (map[string]any, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	entry, ok := list[0].(map[string]any)
	if !ok {
		return nil, false
	}
	return entry, true
}

// firstString extracts a string key from the first entry of a
// list-of-objects field.
func firstString(v any, key string) (string, bool) {
	entry, ok := firstEntry(v)
	if !ok {
		return "", false
	}
	s, ok := entry[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// firstTitle extracts the first title variant from a titles field.
func firstTitle(v any) (string, bool) {
	return firstString(v, "title")
}

// firstValue extracts the first value from a value-keyed field such as
// abstracts or arxiv_eprints.
func firstValue(v any) (string, bool) {
	return firstString(v, "value")
}

// DocumentURL derives the arXiv PDF location for an eprint identifier.
// An empty eprint has no document and yields an empty URL.
func DocumentURL(eprint string) string {
	if eprint == "" {
		return ""
	}
	return arxivPDFBaseURL + eprint
}
