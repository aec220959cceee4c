// Package templates renders the HTML pages served by the web server.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Home renders the landing page describing the assignment API.
func Home(substitutions []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Substitution Evaluation Service</title>
<style>
body { font-family: sans-serif; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; }
pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<h1>Substitution Evaluation Service</h1>
<p>POST line-oriented variable assignments and a substitution name to
<code>/api/assignment</code> to derive a result.</p>
<h2>Substitutions</h2>
<ul>
`); err != nil {
			return err
		}
		for _, name := range substitutions {
			if _, err := fmt.Fprintf(w, "<li><code>%s</code></li>\n", html.EscapeString(name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>
<h2>Example</h2>
<pre>curl -X POST /api/assignment \
  -H 'Content-Type: application/json' \
  -d '{"input": "A: true\nB: false", "substitution": "base"}'</pre>
</body>
</html>
`)
		return err
	})
}
