// Package cli provides the interactive useray operator shell.
//
// The shell is a thin layer over services.SyncEngine: it reads a command per
// line, prompts for any missing fields, and calls exactly one engine
// operation. It never touches the stores directly. Errors are printed and
// the loop carries on; only EOF or "exit" ends it.
//
// Commands:
//
//	list                 all clients
//	show <id>            one client in detail
//	add                  new client (prompts for name, level, duration, id)
//	extend <id> [dur]    lengthen a window (1d, 1w, 1m, 3m)
//	revoke <id>          expire now and withdraw access
//	reinstate <id>       undo a revoke
//	edit <id>            change name, level or start date
//	expired              list expired clients
//	clear                delete expired clients for good
//	exit | quit          leave
package cli
