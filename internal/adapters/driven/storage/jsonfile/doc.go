// Package jsonfile provides a key-value store persisted as a single JSON
// object on disk, plus a watcher that reports changes made to that file by
// other processes.
//
// The file is rewritten atomically (temp file + rename) with mode 0600 in a
// directory with mode 0700. Every operation re-reads the file, so a CLI
// command and a running dashboard see each other's writes.
package jsonfile
