// Package screens holds the list and editor screen state machines.
//
// The screens know nothing about terminals or widgets. They talk to a
// driving.NoteService and a Navigator, and expose the state a front end
// renders: the visible notes, the current query and a user-facing notice.
// All methods are safe for concurrent use, so front ends may run service
// calls on background goroutines.
package screens
