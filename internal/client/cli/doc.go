// Package cli implements the interactive inkwell command line client.
//
// The REPL reads one command per line from stdin and dispatches it to App:
//
//	Not logged in:  register, login, help, exit | quit
//	Logged in:      profile, post, posts [n], show <id>, logout, help, exit | quit
//
// Passwords are read without echo through golang.org/x/term.
package cli
