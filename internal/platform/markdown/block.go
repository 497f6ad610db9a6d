package markdown

import "strings"

// Block is a generated region of a note delimited by two marker lines.
// Text outside the markers belongs to the user and is kept on rewrite.
type Block struct {
	Start string
	End   string
}

// Replace swaps the block's current content in body for generated, appending
// a new block when body has none.
func (b Block) Replace(body, generated string) string {
	region := b.Start + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.End
	start := strings.Index(body, b.Start)
	if start >= 0 {
		if end := strings.Index(body[start:], b.End); end >= 0 {
			return body[:start] + region + body[start+end+len(b.End):]
		}
	}
	switch {
	case strings.TrimSpace(body) == "":
		return region + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + region + "\n"
	default:
		return body + "\n\n" + region + "\n"
	}
}
