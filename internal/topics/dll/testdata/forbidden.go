package main

import (
	"os"

	"csplay/dll"
)

type DoublyLinkedList struct{ head *dll.Node }

func NewDoublyLinkedList() *DoublyLinkedList {
	os.Exit(1)
	return nil
}
