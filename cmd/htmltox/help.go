package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmltox [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML, Markdown or web pages to PDF or images with headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .html/.htm or .md/.markdown file, http(s):// URL, or - for stdin")
	fmt.Fprintln(w, "           (optional when the job file carries a document)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdin input: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Job file name or path")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: pdf, png, jpg, webp (default: pdf)")
	fmt.Fprintln(w, "      --merge               Merge all inputs into one PDF")
	fmt.Fprintln(w, "      --print-job           Print the resolved job as YAML and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --paper-size <s>      Paper: A3, A4, A5, Letter, Legal, Tabloid")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <len>        Margin on every side: 10mm, 1cm, 0.5in, 36pt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Document title (default: first heading)")
	fmt.Fprintln(w, "      --grayscale           Print in grayscale")
	fmt.Fprintln(w, "      --no-background       Do not print backgrounds")
	fmt.Fprintln(w, "      --header-center <s>   Centered header text")
	fmt.Fprintln(w, "      --footer-center <s>   Centered footer text")
	fmt.Fprintln(w, "                            Placeholders: [page], [topage], [date], [title], [webpage]")
	fmt.Fprintln(w, "      --date <s>            Value of [date]: text, auto, auto:FORMAT or auto:PRESET")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D; [text] is literal")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image:")
	fmt.Fprintln(w, "      --screen-width <n>    Viewport width in pixels (default: 1024)")
	fmt.Fprintln(w, "      --quality <n>         jpg/webp quality, 0-100")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-page timeout (default: 30s)")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome binary (env: ROD_BROWSER_BIN)")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show engine phases and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  htmltox report.html")
	fmt.Fprintln(w, "  htmltox -o out/ --footer-center '[page]/[topage]' *.md")
	fmt.Fprintln(w, "  htmltox --header-center '[date]' --date auto:long report.html")
	fmt.Fprintln(w, "  htmltox --merge -o book.pdf intro.md chapter1.md chapter2.md")
	fmt.Fprintln(w, "  htmltox -f png --screen-width 1280 https://example.com")
	fmt.Fprintln(w, "  curl -s https://example.com | htmltox - > page.pdf")
	fmt.Fprintln(w, "  htmltox -c invoice")
}
