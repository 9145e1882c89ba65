// Package watcher turns filesystem changes under a manifest path into
// debounced reload notifications.
//
// The watcher accepts either a single manifest file or a directory of
// manifests. File mode watches the parent directory, so editors that save
// through an atomic rename do not silently detach the watch. Rapid
// successive changes collapse into one event per debounce window; the
// consumer is expected to reload the whole manifest set on every event.
package watcher
