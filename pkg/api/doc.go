// Package api serves the resolution engine as a read-only JSON API.
//
// Routes:
//
//	GET /healthz
//	GET /datasets?search=
//	GET /datasets/{id}
//	GET /datasets/{id}/dimensions
//	GET /datasets/{id}/codes/{dimension}?<params>
//	GET /datasets/{id}/url?<params>[&postcode=&area_type=]
//	GET /datasets/{id}/data?<params>[&format=csv]
//	GET /geography?dataset=&value=&desc=&search=&helper=&chase=
//	GET /postcode/{postcode}?area_type=
//
// Every response carries an X-Request-Id header. Errors are JSON objects
// with "error", "code" and "request_id"; coded errors map to 404 (not
// found), 400 (invalid input) or 502 (upstream failure).
package api
