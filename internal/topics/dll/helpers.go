package dll

import "csplay/internal/harness"

// maxWalk bounds traversals so a cyclic learner list cannot hang a check
const maxWalk = 1 << 16

// Print returns the values from head to tail, or nil for an empty list
func Print(l List) []string {
	return walk(l.Head(), func(n *Node) *Node { return n.Next })
}

// PrintReverse returns the values from tail to head, or nil for an empty list
func PrintReverse(l List) []string {
	return walk(l.Tail(), func(n *Node) *Node { return n.Prev })
}

func walk(start *Node, step func(*Node) *Node) []string {
	if start == nil {
		return nil
	}
	var values []string
	for n := start; n != nil && len(values) < maxWalk; n = step(n) {
		values = append(values, n.Value)
	}
	return values
}

// CheckNodes warns when a non-empty list exposes no head node. It never fails a check by
// itself; the caller's assertions do.
func CheckNodes(env harness.Env[Factory], l List) bool {
	if l.Head() == nil {
		env.Warn("Nodes must have Next, Prev and Value links reachable from Head for tests to work!")
		return false
	}
	return true
}

// missing reports whether the subject's instances lack method
func missing(env harness.Env[Factory], method string) bool {
	return harness.IsTestDisabled(env.Subject, method)
}
