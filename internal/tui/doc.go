// Package tui is gitmenu's full-screen interface: the recent commit list,
// the menus opened from it and the line editor operations prompt with.
//
// Operations are dispatched off the bubbletea event loop. They reach back
// into the running program through ProgramTerminal, which turns ReadLine
// into a prompt message and Release/Restore into a suspended program.
package tui
