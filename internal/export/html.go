package export

import (
	"html"
	"strings"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// htmlStyle is the embedded style block; the exported document is fully
// self-contained with no external asset dependencies.
const htmlStyle = `body { font-family: Arial, sans-serif; margin: 40px; }
h1, h2, h3 { color: #333; }
pre { background: #f4f4f4; padding: 10px; border-radius: 5px; }
code { background: #f4f4f4; padding: 2px 4px; border-radius: 3px; }
.element { margin-bottom: 30px; border-left: 3px solid #007acc; padding-left: 20px; }`

// exportHTML renders the documentation set as a self-contained HTML
// document mirroring the Markdown structure. All content is escaped.
func exportHTML(docs map[string][]model.GeneratedDocumentation) string {
	var out []string
	out = append(out, "<!DOCTYPE html>")
	out = append(out, "<html><head><title>CodeScribe Documentation</title>")
	out = append(out, "<style>")
	out = append(out, htmlStyle)
	out = append(out, "</style></head><body>")

	out = append(out, "<h1>CodeScribe Documentation</h1>")
	out = append(out, "<p>Generated using CodeScribe AI-Powered Code Documentation Assistant</p>")

	for _, path := range sortedPaths(docs) {
		records := docs[path]
		if len(records) == 0 {
			continue
		}

		out = append(out, "<h2>File: <code>"+html.EscapeString(path)+"</code></h2>")

		for _, doc := range records {
			element := doc.Element
			out = append(out, "<div class='element'>")
			out = append(out, "<h3>"+titleKind(element.Kind)+": <code>"+html.EscapeString(element.Name)+"</code></h3>")

			if element.Signature != "" {
				out = append(out, "<h4>Signature:</h4>")
				out = append(out, "<pre><code>"+html.EscapeString(element.Signature)+"</code></pre>")
			}

			if doc.Docstring != "" {
				out = append(out, "<h4>Documentation:</h4>")
				out = append(out, "<pre>"+html.EscapeString(doc.Docstring)+"</pre>")
			}

			if doc.Summary != "" {
				out = append(out, "<h4>Summary:</h4>")
				out = append(out, "<p>"+html.EscapeString(doc.Summary)+"</p>")
			}

			if len(doc.InlineComments) > 0 {
				out = append(out, "<h4>Suggested Comments:</h4>")
				out = append(out, "<ul>")
				for _, comment := range doc.InlineComments {
					out = append(out, "<li>"+html.EscapeString(comment)+"</li>")
				}
				out = append(out, "</ul>")
			}

			out = append(out, "</div>")
		}
	}

	out = append(out, "</body></html>")
	return strings.Join(out, "\n")
}
