package export

import (
	"strings"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// exportMarkdown renders the documentation set as one Markdown document:
// a fixed header, a section per file, a subsection per element.
func exportMarkdown(docs map[string][]model.GeneratedDocumentation) string {
	var out []string
	out = append(out, "# CodeScribe Documentation\n")
	out = append(out, "Generated using CodeScribe AI-Powered Code Documentation Assistant\n")
	out = append(out, "---\n")

	for _, path := range sortedPaths(docs) {
		records := docs[path]
		if len(records) == 0 {
			continue
		}

		out = append(out, "## File: `"+path+"`\n")

		for _, doc := range records {
			element := doc.Element
			out = append(out, "### "+titleKind(element.Kind)+": `"+element.Name+"`\n")

			if element.Signature != "" {
				out = append(out, "**Signature:**\n")
				out = append(out, "```"+signatureFenceTag(element.Signature))
				out = append(out, element.Signature)
				out = append(out, "```\n")
			}

			if doc.Docstring != "" {
				out = append(out, "**Documentation:**\n")
				out = append(out, doc.Docstring)
				out = append(out, "")
			}

			if doc.Summary != "" {
				out = append(out, "**Summary:**\n")
				out = append(out, doc.Summary)
				out = append(out, "")
			}

			if len(doc.InlineComments) > 0 {
				out = append(out, "**Suggested Comments:**\n")
				for _, comment := range doc.InlineComments {
					out = append(out, "- "+comment)
				}
				out = append(out, "")
			}

			out = append(out, "---\n")
		}
	}

	return strings.Join(out, "\n")
}
