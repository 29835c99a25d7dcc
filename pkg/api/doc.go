// Package api serves the layout engine over HTTP.
//
// The service is stateless apart from running gestures: every request
// carries the snapshot it operates on (the JSON written by
// [github.com/matzehuels/panelayout/pkg/io.WriteLayout]) and every response
// returns the new snapshot. Clients keep their committed layout themselves.
//
// # Routes
//
//	GET    /healthz
//	POST   /v1/format               draft + size → snapshot (cached)
//	POST   /v1/positions            snapshot → absolute rectangles
//	POST   /v1/check                snapshot → invariant violations
//	POST   /v1/resize               move a divider
//	POST   /v1/corner               move a corner pointer
//	POST   /v1/scale                resize the root by a delta, or to a size
//	POST   /v1/remove               remove a node
//	POST   /v1/insert               insert a new leaf next to a target
//	POST   /v1/drag                 move a leaf next to a target
//	POST   /v1/swap                 exchange two leaves
//	POST   /v1/apply                replay a script of ops
//	POST   /v1/gestures             begin a gesture on a snapshot
//	PATCH  /v1/gestures/{id}        report the pointer offset since begin
//	POST   /v1/gestures/{id}/end    commit the live snapshot
//	DELETE /v1/gestures/{id}        cancel, returning the base snapshot
//
// # Errors
//
// Failures are returned as {"error": {"code": ..., "message": ...}} using the
// codes of [github.com/matzehuels/panelayout/pkg/errors]. Unknown keys and
// gestures map to 404, structural conflicts (root edits, a divider without a
// sibling) to 409, other input errors to 400 and everything else to 500.
package api
