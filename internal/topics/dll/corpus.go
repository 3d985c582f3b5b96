package dll

import (
	"slices"
	"strings"

	"csplay/internal/harness"
)

type (
	env   = harness.Env[Factory]
	check = harness.Descriptor[Factory]
)

// Corpus returns the doubly linked list checks in display order
func Corpus() harness.Corpus[Factory] {
	return harness.Corpus[Factory]{
		Topic:       "dll",
		Name:        Name,
		Descriptors: append(append(append(append(existence(), addChecks()...), removeChecks()...), indexChecks()...), inspectChecks()...),
	}
}

func existence() []check {
	return []check{
		{
			Name:    "exists",
			Message: "The DoublyLinkedList data structure exists",
			Check: func(e env) harness.Verdict {
				return harness.Expect(e.Subject != nil && e.Subject() != nil)
			},
		},
		{
			Name:    "initial-state",
			Message: "The DoublyLinkedList data structure should have Head, Tail and Length, which initialize to nil, nil and 0, respectively",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				return harness.Expect(l.Head() == nil && l.Tail() == nil && l.Length() == 0)
			},
		},
	}
}

func addChecks() []check {
	return []check{
		method("add", "The DoublyLinkedList class should have a method called Add."),
		{
			Name:    "add-first-node",
			Message: "The Add method should assign the first node added to the Head and Tail properties.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				CheckNodes(e, l)
				return harness.Expect(l.Head().Value == "cat" && l.Tail().Value == "cat")
			},
		},
		{
			Name:    "add-appends",
			Message: "Additional elements should be appended to the list's tail, and each node should keep track of both the next and previous nodes.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				for _, v := range []string{"cat", "dog", "bird", "pig"} {
					l.Add(v)
				}
				return harness.Expect(slices.Equal(Print(l), []string{"cat", "dog", "bird", "pig"}) &&
					slices.Equal(PrintReverse(l), []string{"pig", "bird", "dog", "cat"}) &&
					l.Tail().Next == nil &&
					l.Head().Prev == nil)
			},
		},
		{
			Name:    "add-length",
			Message: "The Length of the DoublyLinkedList should increment every time Add is called to reflect the number of nodes in the linked list.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				first := l.Length() == 2
				l.Add("bird")
				l.Add("pig")
				return harness.Expect(first && l.Length() == 4)
			},
		},
	}
}

func removeChecks() []check {
	return []check{
		method("remove", "The DoublyLinkedList class should have a method called Remove, which accepts an element to remove as an argument."),
		{
			Name:    "remove-head",
			Message: "When the first node is removed, Head should assume the value of the removed node's Next, and if set, that node's Prev should be nil.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				l.Remove("cat")
				first := l.Head().Value == "dog" && l.Head().Prev == nil
				l.Remove("dog")
				return harness.Expect(first && l.Head() == nil && l.Tail() == nil)
			},
		},
		{
			Name:    "remove-tail",
			Message: "The tail node can be removed when the list has one or more nodes, and references to previous & next nodes should be correctly maintained.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				l.Add("bird")
				l.Remove("bird")
				first := l.Tail().Value == "dog" && l.Tail().Prev.Value == "cat" && l.Tail().Next == nil
				l.Remove("dog")
				second := l.Head().Next == nil
				l.Remove("cat")
				return harness.Expect(first && second && l.Tail() == nil && l.Head() == nil)
			},
		},
		{
			Name:    "remove-middle",
			Message: "When an element that is neither the head nor the tail node is removed, the linked list structure and references to previous & next nodes should be maintained.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				l.Add("bird")
				l.Remove("dog")
				return harness.Expect(l.Head().Value == "cat" &&
					l.Head().Next.Value == "bird" &&
					l.Head().Next.Prev.Value == "cat")
			},
		},
		{
			Name:    "remove-returns",
			Message: "For every node removed from the list, the Remove method should report the removed value and decrement the Length of the list by one.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				for _, v := range []string{"cat", "bird", "pig", "cow"} {
					l.Add(v)
				}
				ok := true
				for i, v := range []string{"cat", "pig", "cow", "bird"} {
					got, found := l.Remove(v)
					ok = ok && found && got == v && l.Length() == 3-i
				}
				return harness.Expect(ok)
			},
		},
		{
			Name:    "remove-missing",
			Message: "If Remove is called on an empty list, or finds no matching value to remove, it should report not found and the list's Length should remain unchanged.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				_, foundEmpty := l.Remove("cat")
				l.Add("dog")
				l.Add("cat")
				_, foundMissing := l.Remove("bird")
				return harness.Expect(!foundEmpty && !foundMissing && l.Length() == 2)
			},
		},
	}
}

func indexChecks() []check {
	return []check{
		method("removeAt", "The DoublyLinkedList class should have a method called RemoveAt, which accepts the index of the element to remove as an argument."),
		{
			Name:    "removeat-structure",
			Message: "The RemoveAt method should remove and return the value at the given index, while retaining the linked list structure and references (consider each of the cases outlined in the Remove checks above).",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				for _, v := range []string{"cat", "dog", "bird", "fish"} {
					l.Add(v)
				}

				// middle: bird follows cat
				v, ok := l.RemoveAt(1)
				middle := ok && v == "dog" &&
					l.Head().Next.Value == "bird" &&
					l.Head().Next.Prev.Value == "cat"

				// head: bird becomes head, fish follows it
				v, ok = l.RemoveAt(0)
				head := ok && v == "cat" &&
					l.Head().Value == "bird" &&
					l.Head().Prev == nil &&
					l.Head().Next.Value == "fish" &&
					l.Head().Next.Prev.Value == "bird"

				// tail: bird is both head and tail
				v, ok = l.RemoveAt(1)
				tail := ok && v == "fish" &&
					l.Head().Next == nil &&
					l.Tail().Value == "bird" &&
					l.Tail().Prev == nil

				// last node
				v, ok = l.RemoveAt(0)
				last := ok && v == "bird" && l.Head() == nil && l.Tail() == nil

				return harness.Expect(middle && head && tail && last)
			},
		},
		{
			Name:    "removeat-length",
			Message: "The RemoveAt method should decrement the Length of the list by one for every node removed from the list.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				l.Add("kitten")
				ok := l.Length() == 3
				l.RemoveAt(1)
				ok = ok && l.Length() == 2
				l.RemoveAt(1)
				ok = ok && l.Length() == 1
				l.RemoveAt(0)
				return harness.Expect(ok && l.Length() == 0)
			},
		},
		{
			Name:    "removeat-bounds",
			Message: "The RemoveAt method should report not found if the given index is less than 0, greater than or equal to the length of the list, or if the list is empty.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				_, emptyOK := l.RemoveAt(0)
				l.Add("cat")
				_, oneOK := l.RemoveAt(1)
				_, fiveOK := l.RemoveAt(5)
				_, negOK := l.RemoveAt(-5)
				return harness.Expect(!emptyOK && !oneOK && !fiveOK && !negOK && l.Length() == 1)
			},
		},
		method("addAt", "The DoublyLinkedList class should have a method called AddAt, which accepts an index and an element to add as arguments."),
		{
			Name:    "addat-middle",
			Message: "The AddAt method should add the given value to the list at the given index, while maintaining the linked-list structure and references.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				l.AddAt(1, "bird")
				return harness.Expect(l.Head().Value == "cat" &&
					l.Head().Next.Value == "bird" &&
					l.Head().Next.Prev.Value == "cat" &&
					l.Tail().Value == "dog" &&
					l.Tail().Prev.Value == "bird")
			},
		},
		{
			Name:    "addat-head",
			Message: "When the given index is 0, the value passed to AddAt should become the new head node, referencing the rest of the list in its Next link.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.AddAt(0, "bird")
				return harness.Expect(l.Head().Value == "bird" &&
					l.Head().Prev == nil &&
					l.Tail().Value == "cat" &&
					l.Tail().Prev.Value == "bird" &&
					l.Tail().Next == nil)
			},
		},
		{
			Name:    "addat-bounds",
			Message: "The AddAt method should refuse the insertion if the given index is less than 0, greater than or equal to the length of the list, or if the list is empty.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				emptyOK := l.AddAt(0, "cat")
				l.Add("cat")
				l.Add("dog")
				farOK := l.AddAt(4, "cat")
				negOK := l.AddAt(-4, "cat")
				return harness.Expect(!emptyOK && !farOK && !negOK && l.Length() == 2)
			},
		},
		{
			Name:    "addat-length",
			Message: "The AddAt method should increment the Length of the linked list by one for each new node added to the list.",
			Check: func(e env) harness.Verdict {
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				l.AddAt(0, "bird")
				l.AddAt(1, "fish")
				return harness.Expect(l.Length() == 4)
			},
		},
	}
}

func inspectChecks() []check {
	return []check{
		{
			Name:    "peekhead",
			Message: "The PeekHead method should return the Head of the DoublyLinkedList, so that you can easily and visually inspect the list.",
			Check: func(e env) harness.Verdict {
				if missing(e, "peekHead") {
					return harness.VerdictDisabled
				}
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				peek := l.(HeadPeeker).PeekHead()
				return harness.Expect(peek.Value == "cat" && peek.Next.Value == "dog")
			},
		},
		{
			Name:    "peektail",
			Message: "The PeekTail method should return the Tail of the DoublyLinkedList, so that you can easily and visually inspect the list.",
			Check: func(e env) harness.Verdict {
				if missing(e, "peekTail") {
					return harness.VerdictDisabled
				}
				l := e.Subject()
				l.Add("cat")
				l.Add("dog")
				peek := l.(TailPeeker).PeekTail()
				return harness.Expect(peek.Value == "dog" && peek.Prev.Value == "cat")
			},
		},
		{
			Name:    "indexof-found",
			Message: "The IndexOf method should return the zero-based index of the given element.",
			Check: func(e env) harness.Verdict {
				if missing(e, "indexOf") {
					return harness.VerdictDisabled
				}
				l := e.Subject()
				idx := l.(Indexer)
				l.Add("cat")
				l.Add("dog")
				l.Add("bird")
				first := idx.IndexOf("bird") == 2
				l.Add("pig")
				l.Add("cow")
				second := idx.IndexOf("cow") == 4
				l.Remove("dog")
				return harness.Expect(first && second && idx.IndexOf("bird") == 1)
			},
		},
		{
			Name:    "indexof-missing",
			Message: "The IndexOf method should return -1 if the given element doesn't exist, or if the method is called on an empty list.",
			Check: func(e env) harness.Verdict {
				if missing(e, "indexOf") {
					return harness.VerdictDisabled
				}
				l := e.Subject()
				idx := l.(Indexer)
				empty := idx.IndexOf("dog") == -1
				l.Add("cat")
				return harness.Expect(empty && idx.IndexOf("dog") == -1)
			},
		},
		{
			Name:    "elementat-found",
			Message: "The ElementAt method should return the element at the given index.",
			Check: func(e env) harness.Verdict {
				if missing(e, "elementAt") {
					return harness.VerdictDisabled
				}
				l := e.Subject()
				at := func(i int, want string) bool {
					v, ok := l.(ElementAter).ElementAt(i)
					return ok && v == want
				}
				l.Add("cat")
				l.Add("dog")
				ok := at(1, "dog") && at(0, "cat")
				l.Add("pig")
				l.Add("bird")
				l.Add("toad")
				ok = ok && at(3, "bird")
				l.Remove("bird")
				return harness.Expect(ok && at(3, "toad"))
			},
		},
		{
			Name:    "elementat-bounds",
			Message: "The ElementAt method should report not found if the given index is less than 0, greater than or equal to the length of the list, or if the list is empty.",
			Check: func(e env) harness.Verdict {
				if missing(e, "elementAt") {
					return harness.VerdictDisabled
				}
				l := e.Subject()
				at := l.(ElementAter)
				_, emptyOK := at.ElementAt(0)
				l.Add("cat")
				_, oneOK := at.ElementAt(1)
				_, fiveOK := at.ElementAt(5)
				_, negOK := at.ElementAt(-5)
				return harness.Expect(!emptyOK && !oneOK && !fiveOK && !negOK)
			},
		},
	}
}

// method builds the check that a required method is present
func method(name, message string) check {
	return check{
		Name:    strings.ToLower(name) + "-method",
		Message: message,
		Check: func(e env) harness.Verdict {
			return harness.Expect(!missing(e, name))
		},
	}
}
