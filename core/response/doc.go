// Package response provides composable HTTP response builders returning
// handler.Response functions: plain text, buffered html/template rendering,
// redirects, and file downloads, plus the HTTPError taxonomy used to map
// handler errors onto HTTP statuses at the router boundary.
package response
