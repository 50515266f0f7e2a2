package continuation

import (
	"fmt"
	"strings"
)

type branchName string

const (
	consequentBranch branchName = "consequent"
	alternateBranch  branchName = "alternate"
)

// HandlerMessage is the base message of every diagnostic.
func (c Config) HandlerMessage() string {
	return fmt.Sprintf("%s() is not being called in the handler", c.name())
}

func (c Config) branchNote(b branchName) string {
	return fmt.Sprintf("%s() is not being called in the %s block", c.name(), b)
}

// Fragments returns the message fragments for a failed result: the base
// message followed by the branch notes.
func (c Config) Fragments(r Result) []string {
	return joinNotes([]string{c.HandlerMessage()}, r.Notes)
}

// JoinFragments joins fragments the way they are reported.
func JoinFragments(fragments []string) string {
	return strings.Join(fragments, ",")
}
