package bridge

import (
	"strings"
)

const (
	// DocsName is the exported name of the map from type name to type doc.
	DocsName = "docs"

	docPrompt       = ">>> "
	docContinuation = "... "
)

// DocPart is one block of a usage example found in a type's doc: the
// source lines and the text its final value is expected to print as.
type DocPart struct {
	Source string
	Want   string
}

// ParseDocExamples collects the usage example embedded in doc. Lines that
// begin with ">>> " or "... " are source; non-blank lines directly after
// source are the wanted output of that block. Other text is ignored.
func ParseDocExamples(doc string) []DocPart {
	var parts []DocPart
	var source, want []string
	inWant := false

	flush := func() {
		if len(source) > 0 {
			parts = append(parts, DocPart{
				Source: strings.Join(source, "\n"),
				Want:   strings.Join(want, "\n"),
			})
		}
		source, want, inWant = nil, nil, false
	}

	for _, raw := range strings.Split(doc, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, docPrompt):
			if inWant {
				flush()
			}
			source = append(source, strings.TrimPrefix(line, docPrompt))
		case strings.HasPrefix(line, docContinuation) && len(source) > 0 && !inWant:
			source = append(source, strings.TrimPrefix(line, docContinuation))
		case line == "":
			if inWant {
				flush()
			}
		case len(source) > 0:
			inWant = true
			want = append(want, line)
		}
	}
	flush()
	return parts
}
