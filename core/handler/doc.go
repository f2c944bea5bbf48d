// Package handler defines the core request handling types shared by the
// router, responses, and middleware: a generic request Context contract and
// the HandlerFunc/Response/Middleware function types built on it.
//
// Handlers return a Response instead of writing directly, which lets
// middleware decorate the response and lets the router funnel every error
// through a single ErrorHandler.
package handler
