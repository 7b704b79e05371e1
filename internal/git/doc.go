// Package git provides the repository queries gitmenu needs.
//
// Queries are answered through go-git where it can (HEAD, branches,
// upstream configuration, remote-tracking refs, merge state, log). The
// CommandRunner builds git commands for everything that has to run the real
// git binary; operations hand those commands to the process engine rather
// than running them here.
package git
