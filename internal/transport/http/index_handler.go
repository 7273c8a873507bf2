package http

import "net/http"

const indexPage = `<h3>pricepulse</h3>
<p>Endpoints:</p>
<ul>
<li>/api/tables - combined HTML of all parsed tables</li>
<li>/api/tables/json - JSON records of all parsed tables</li>
<li>/api/tables/csv - one table as a CSV download</li>
<li>/api/segments - early/mid/recent partition of a table</li>
<li>/api/indicators/bollinger - Bollinger Bands per segment</li>
<li>/api/indicators/macd - MACD per segment</li>
<li>/api/charts/bollinger - Bollinger Bands PNG chart</li>
<li>/api/charts/macd - MACD PNG chart</li>
<li>/api/health - service health</li>
<li>/metrics - Prometheus metrics</li>
</ul>
`

// Index handles GET /, listing the available endpoints.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}
