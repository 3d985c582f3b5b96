package main

import "csplay/dll"

type chain struct {
	head, tail *dll.Node
	length     int
}

func (c *chain) Head() *dll.Node { return c.head }
func (c *chain) Tail() *dll.Node { return c.tail }
func (c *chain) Length() int     { return c.length }

func (c *chain) Add(v string) {
	n := &dll.Node{Value: v, Prev: c.tail}
	if c.head == nil {
		c.head = n
	} else {
		c.tail.Next = n
	}
	c.tail = n
	c.length++
}

func (c *chain) nodeAt(i int) *dll.Node {
	if i < 0 || i >= c.length {
		return nil
	}
	n := c.head
	for ; i > 0; i-- {
		n = n.Next
	}
	return n
}

func (c *chain) unlink(n *dll.Node) {
	switch {
	case c.length == 1:
		c.head, c.tail = nil, nil
	case n.Prev == nil:
		c.head = n.Next
		c.head.Prev = nil
	case n.Next == nil:
		c.tail = n.Prev
		c.tail.Next = nil
	default:
		n.Prev.Next = n.Next
		n.Next.Prev = n.Prev
	}
	n.Next, n.Prev = nil, nil
	c.length--
}

type DoublyLinkedList struct {
	*chain
}

func NewDoublyLinkedList() *DoublyLinkedList {
	return &DoublyLinkedList{chain: &chain{}}
}

func (l *DoublyLinkedList) Remove(v string) (string, bool) {
	for n := l.head; n != nil; n = n.Next {
		if n.Value == v {
			l.unlink(n)
			return v, true
		}
	}
	return "", false
}

func (l *DoublyLinkedList) RemoveAt(i int) (string, bool) {
	n := l.nodeAt(i)
	if n == nil {
		return "", false
	}
	l.unlink(n)
	return n.Value, true
}

func (l *DoublyLinkedList) AddAt(i int, v string) bool {
	at := l.nodeAt(i)
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

func (l *DoublyLinkedList) PeekHead() *dll.Node { return l.head }
func (l *DoublyLinkedList) PeekTail() *dll.Node { return l.tail }

func (l *DoublyLinkedList) IndexOf(v string) int {
	i := 0
	for n := l.head; n != nil; n = n.Next {
		if n.Value == v {
			return i
		}
		i++
	}
	return -1
}

func (l *DoublyLinkedList) ElementAt(i int) (string, bool) {
	if n := l.nodeAt(i); n != nil {
		return n.Value, true
	}
	return "", false
}
