// Package cli provides the interactive blog command-line client.
//
// It wires configuration, the local session store, the HTTP gateway and the
// services into a REPL. At start the stored session, if any, is restored in
// the background; until that finishes the prompt shows "(loading)" and edit
// and delete are refused, since ownership of a post cannot be known yet.
//
// Commands:
//   - register, login, logout, whoami, profile
//   - list, mine, show <id>
//   - new, edit <id>, delete <id>
//
// Every form runs through forms.Form: local validation first, then the
// request, with field errors from either side printed per field and a retry
// that asks again only for the failing fields.
package cli
