// Package dll is the doubly linked list topic: the capability interface a learner
// implements, the shared traversal helpers and the check corpus.
package dll

// Name is what the implementation under test is called in checks and messages
const Name = "DoublyLinkedList"

// Node is one element of a doubly linked list
type Node struct {
	Value string
	Next  *Node
	Prev  *Node
}

// List is the capability set every check may rely on.
// (value, ok) results report ok=false where the playground would return null.
type List interface {
	Head() *Node
	Tail() *Node
	Length() int
	Add(v string)
	Remove(v string) (string, bool)
	RemoveAt(i int) (string, bool)
	AddAt(i int, v string) bool
}

// HeadPeeker is optional
type HeadPeeker interface {
	PeekHead() *Node
}

// TailPeeker is optional
type TailPeeker interface {
	PeekTail() *Node
}

// Indexer is optional
type Indexer interface {
	IndexOf(v string) int
}

// ElementAter is optional
type ElementAter interface {
	ElementAt(i int) (string, bool)
}

// Factory builds a fresh, empty list
type Factory func() List
