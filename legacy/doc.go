// Package legacy provides a client for the retired Petfinder v1 API.
//
// The v1 API is keyed by a single API key passed as a query parameter and
// answers in JSON or XML. JSON bodies use the {"$t": value} wrapping of the
// original XML schema. Responses are returned as raw bodies; use
// Response.Decode for JSON and the table package to flatten them.
//
// Paged methods follow the lastOffset value of each response. A search never
// reaches past the 2000th record, which is the most the API will serve.
package legacy
