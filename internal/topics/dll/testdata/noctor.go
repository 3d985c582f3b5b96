package main

type Stack struct {
	items []string
}

func (s *Stack) Push(v string) { s.items = append(s.items, v) }
