package dll

// Solution returns an empty reference list implementing every capability
func Solution() List {
	return &solution{}
}

type solution struct {
	head   *Node
	tail   *Node
	length int
}

func (s *solution) Head() *Node     { return s.head }
func (s *solution) Tail() *Node     { return s.tail }
func (s *solution) Length() int     { return s.length }
func (s *solution) PeekHead() *Node { return s.head }
func (s *solution) PeekTail() *Node { return s.tail }

func (s *solution) Add(v string) {
	n := &Node{Value: v, Prev: s.tail}
	if s.head == nil {
		s.head = n
	} else {
		s.tail.Next = n
	}
	s.tail = n
	s.length++
}

func (s *solution) Remove(v string) (string, bool) {
	for n := s.head; n != nil; n = n.Next {
		if n.Value == v {
			s.unlink(n)
			return v, true
		}
	}
	return "", false
}

func (s *solution) RemoveAt(i int) (string, bool) {
	n := s.nodeAt(i)
	if n == nil {
		return "", false
	}
	s.unlink(n)
	return n.Value, true
}

// AddAt inserts before the node currently at index i. Appending at i == Length is
// rejected; use Add.
func (s *solution) AddAt(i int, v string) bool {
	at := s.nodeAt(i)
	if at == nil {
		return false
	}
	n := &Node{Value: v, Next: at, Prev: at.Prev}
	if at.Prev == nil {
		s.head = n
	} else {
		at.Prev.Next = n
	}
	at.Prev = n
	s.length++
	return true
}

func (s *solution) IndexOf(v string) int {
	i := 0
	for n := s.head; n != nil; n = n.Next {
		if n.Value == v {
			return i
		}
		i++
	}
	return -1
}

func (s *solution) ElementAt(i int) (string, bool) {
	if n := s.nodeAt(i); n != nil {
		return n.Value, true
	}
	return "", false
}

func (s *solution) nodeAt(i int) *Node {
	if i < 0 || i >= s.length {
		return nil
	}
	n := s.head
	for ; i > 0; i-- {
		n = n.Next
	}
	return n
}

func (s *solution) unlink(n *Node) {
	if n.Prev == nil {
		s.head = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		s.tail = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}
	n.Next, n.Prev = nil, nil
	s.length--
}
