package main

import (
	"fmt"

	"csplay/dll"
)

type DoublyLinkedList struct {
	head   *dll.Node
	tail   *dll.Node
	length int
}

func NewDoublyLinkedList() *DoublyLinkedList {
	return &DoublyLinkedList{}
}

func (l *DoublyLinkedList) Head() *dll.Node { return l.head }
func (l *DoublyLinkedList) Tail() *dll.Node { return l.tail }
func (l *DoublyLinkedList) Length() int     { return l.length }

func (l *DoublyLinkedList) PeekHead() *dll.Node {
	fmt.Println("peeking at", l.head.Value)
	return l.head
}

func (l *DoublyLinkedList) Add(v string) {
	n := &dll.Node{Value: v, Prev: l.tail}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.Next = n
	}
	l.tail = n
	l.length++
}

func (l *DoublyLinkedList) Remove(v string) bool {
	for n := l.head; n != nil; n = n.Next {
		if n.Value == v {
			l.unlink(n)
			return true
		}
	}
	return false
}

func (l *DoublyLinkedList) IndexOf(v string) (int, bool) {
	i := 0
	for n := l.head; n != nil; n = n.Next {
		if n.Value == v {
			return i, true
		}
		i++
	}
	return -1, false
}

func (l *DoublyLinkedList) ElementAt(i int) string {
	if n := l.at(i); n != nil {
		return n.Value
	}
	return ""
}

func (l *DoublyLinkedList) RemoveAt(i int) (string, bool) {
	n := l.at(i)
	if n == nil {
		return "", false
	}
	l.unlink(n)
	return n.Value, true
}

func (l *DoublyLinkedList) AddAt(i int, v string) bool {
	at := l.at(i)
	if at == nil {
		return false
	}
	n := &dll.Node{Value: v, Next: at, Prev: at.Prev}
	if at.Prev == nil {
		l.head = n
	} else {
		at.Prev.Next = n
	}
	at.Prev = n
	l.length++
	return true
}

func (l *DoublyLinkedList) at(i int) *dll.Node {
	if i < 0 || i >= l.length {
		return nil
	}
	n := l.head
	for ; i > 0; i-- {
		n = n.Next
	}
	return n
}

func (l *DoublyLinkedList) unlink(n *dll.Node) {
	if n.Prev == nil {
		l.head = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		l.tail = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}
	n.Next, n.Prev = nil, nil
	l.length--
}
