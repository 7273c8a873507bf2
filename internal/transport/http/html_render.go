package http

import (
	"fmt"
	"html"
	"strings"

	"pricepulse/internal/dataprocessing"
)

// writeTableHTML renders a dataset as a plain HTML table with escaped cell
// text. Null cells render empty.
func writeTableHTML(sb *strings.Builder, ds *dataprocessing.Dataset) {
	sb.WriteString("<table border=\"1\">\n<thead><tr>")
	for _, col := range ds.Columns {
		fmt.Fprintf(sb, "<th>%s</th>", html.EscapeString(col))
	}
	sb.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range ds.Rows {
		sb.WriteString("<tr>")
		for i := range ds.Columns {
			var cell string
			if i < len(row) {
				cell = row[i].Format()
			}
			fmt.Fprintf(sb, "<td>%s</td>", html.EscapeString(cell))
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}
