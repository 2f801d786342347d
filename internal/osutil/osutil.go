// Package osutil holds the platform name, exit codes and the permissions used
// for EchoVerse data on disk
package osutil

const Windows = "windows"

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const (
	// DirPermission applies to the database and recordings directories.
	DirPermission = 0o755
	// PrivateFilePermission applies to the entry database. Recordings are
	// created with os.CreateTemp, which already uses 0o600.
	PrivateFilePermission = 0o600
)
