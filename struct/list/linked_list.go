package list

import (
	"fmt"
	"strings"
)

// Node is one link of a LinkedList. Nodes are owned by their list; callers
// only read them while walking from Front.
type Node[T any] struct {
	val  T
	next *Node[T]
}

func (n *Node[T]) Value() T {
	return n.val
}

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// LinkedList is a singly linked list that keeps a reference to both ends, so
// PushFront and PushBack are O(1) while indexed and keyed access is O(n).
// The zero value is an empty list ready to use. A LinkedList is not safe for
// concurrent use.
type LinkedList[T any] struct {
	head     *Node[T]
	tail     *Node[T]
	size     int
	maxNodes int
}

var _ List[int] = (*LinkedList[int])(nil)

// New returns an empty list.
func New[T any](opts ...Option) *LinkedList[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &LinkedList[T]{
		head:     nil,
		tail:     nil,
		size:     0,
		maxNodes: o.maxNodes,
	}
}

// Make returns a list holding values in order.
func Make[T any](values ...T) *LinkedList[T] {
	l := New[T]()
	for _, v := range values {
		_ = l.PushBack(v)
	}
	return l
}

// newNode is the only place nodes are created. No link may be rewired before
// it has succeeded.
func (l *LinkedList[T]) newNode(val T) (*Node[T], error) {
	if l.maxNodes > 0 && l.size >= l.maxNodes {
		return nil, ErrAllocation
	}
	return &Node[T]{val: val}, nil
}

// nodeAt walks to the node at index, which must be in [0, size).
func (l *LinkedList[T]) nodeAt(index int) *Node[T] {
	n := l.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}

// unlink removes n, whose predecessor is prev (nil when n is the head).
func (l *LinkedList[T]) unlink(prev, n *Node[T]) {
	if prev == nil {
		l.head = n.next
	} else {
		prev.next = n.next
	}
	if l.tail == n {
		l.tail = prev
	}
	n.next = nil
	l.size--
}

func (l *LinkedList[T]) PushFront(val T) error {
	if l == nil {
		return ErrInvalidArgument
	}
	n, err := l.newNode(val)
	if err != nil {
		return err
	}
	if l.head == nil {
		l.head = n
		l.tail = n
	} else {
		n.next = l.head
		l.head = n
	}
	l.size++
	return nil
}

func (l *LinkedList[T]) PushBack(val T) error {
	if l == nil {
		return ErrInvalidArgument
	}
	n, err := l.newNode(val)
	if err != nil {
		return err
	}
	if l.tail == nil {
		l.head = n
		l.tail = n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.size++
	return nil
}

// InsertAt links val in so that it becomes the element at index. An index at
// or past the end is ignored and reported as (false, nil).
func (l *LinkedList[T]) InsertAt(val T, index int) (bool, error) {
	if l == nil || index < 0 {
		return false, ErrInvalidArgument
	}
	if index >= l.size {
		return false, nil
	}
	if index == 0 {
		if err := l.PushFront(val); err != nil {
			return false, err
		}
		return true, nil
	}
	n, err := l.newNode(val)
	if err != nil {
		return false, err
	}
	prev := l.nodeAt(index - 1)
	n.next = prev.next
	prev.next = n
	l.size++
	return true, nil
}

// RemoveValue removes the first element for which cmp(element, val) == 0.
// It reports whether an element was removed.
func (l *LinkedList[T]) RemoveValue(val T, cmp Comparator[T]) (bool, error) {
	if l == nil || cmp == nil {
		return false, ErrInvalidArgument
	}
	var prev *Node[T]
	for n := l.head; n != nil; prev, n = n, n.next {
		if cmp(n.val, val) == 0 {
			l.unlink(prev, n)
			return true, nil
		}
	}
	return false, nil
}

// RemoveAt removes the element at index. An index past the end is ignored
// and reported as (false, nil).
func (l *LinkedList[T]) RemoveAt(index int) (bool, error) {
	if l == nil || index < 0 {
		return false, ErrInvalidArgument
	}
	if index >= l.size {
		return false, nil
	}
	var prev *Node[T]
	n := l.head
	for i := 0; i < index; i++ {
		prev, n = n, n.next
	}
	l.unlink(prev, n)
	return true, nil
}

// Find returns the index of the first element equal to val under cmp.
func (l *LinkedList[T]) Find(val T, cmp Comparator[T]) (int, error) {
	if l == nil || cmp == nil {
		return -1, ErrInvalidArgument
	}
	i := 0
	for n := l.head; n != nil; n = n.next {
		if cmp(n.val, val) == 0 {
			return i, nil
		}
		i++
	}
	return -1, ErrNotFound
}

// GetAt returns the element at index. Asking an empty list is an invalid
// argument, asking past the end of a non-empty one is ErrNotFound.
func (l *LinkedList[T]) GetAt(index int) (val T, err error) {
	if l == nil || l.head == nil || index < 0 {
		return val, ErrInvalidArgument
	}
	if index >= l.size {
		return val, ErrNotFound
	}
	return l.nodeAt(index).val, nil
}

func (l *LinkedList[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Clear drops every node. Payloads are left to the caller.
func (l *LinkedList[T]) Clear() {
	if l == nil {
		return
	}
	n := l.head
	for n != nil {
		next := n.next
		n.next = nil
		n = next
	}
	l.head = nil
	l.tail = nil
	l.size = 0
}

func (l *LinkedList[T]) Front() *Node[T] {
	if l == nil {
		return nil
	}
	return l.head
}

func (l *LinkedList[T]) Back() *Node[T] {
	if l == nil {
		return nil
	}
	return l.tail
}

// Values copies the elements into a new slice, head first.
func (l *LinkedList[T]) Values() []T {
	slice := make([]T, 0, l.Len())
	for n := l.Front(); n != nil; n = n.next {
		slice = append(slice, n.val)
	}
	return slice
}

func (l *LinkedList[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for n := l.Front(); n != nil; n = n.next {
		if n != l.head {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, n.val)
	}
	sb.WriteByte(']')
	return sb.String()
}
