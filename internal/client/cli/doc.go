// Package cli provides the interactive Pokodex command-line client.
//
// App is the composition root: it opens the device database, builds the
// identity resolver, the configured favorites store behind one Facade, the
// Pokémon API client and the auth service, then runs the REPL until the
// user exits. With the remote store a background watcher pings the backend
// and the prompt shows online/offline.
package cli
