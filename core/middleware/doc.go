// Package middleware groups the HTTP middleware of the codesync server.
//
//   - auth: API key validation for every non-public route.
//   - rayid: a request id per request, stored in fiber locals under
//     "ray_id" and echoed in the X-Ray-ID response header.
//
// Register rayid first so that authentication failures are traceable too.
package middleware
