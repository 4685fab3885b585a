// Package wsmfs wires the folder, file, and template operations into an
// application: configuration parsing, store selection, the HTTP surface,
// and the websocket change feed.
//
// The package splits roughly in two. Service holds the business
// operations — tree-checked moves, transactional cascade deletes, template
// cloning — and knows nothing about HTTP. App owns process concerns: it
// builds the store from Config, gates it behind the runtime read-only flag,
// and exposes Service over a gorilla/mux router with graceful shutdown.
package wsmfs
