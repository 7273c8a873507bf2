// Package services implements the business logic layer between the HTTP
// transport and the dataprocessing/indicator packages. Services take a
// context, return domain values or sentinel errors, and leave all HTTP
// concerns (status codes, rendering) to the transport layer.
package services
