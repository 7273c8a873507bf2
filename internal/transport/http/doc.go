// Package http implements the HTTP request handlers. Handlers stay thin:
// they parse and validate query parameters, call the service layer and
// render the result; all computation lives behind the service interface and
// all error mapping goes through the central error handler.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Pipeline
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
package http
