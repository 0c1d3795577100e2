// Package compare holds ready-made comparators for list.LinkedList.
package compare

import (
	"bytes"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"

	"linkedlist/struct/list"
)

func Ordered[T constraints.Ordered](a, b T) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func Bytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

func Decimal(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

// Reverse flips the order imposed by c.
func Reverse[T any](c list.Comparator[T]) list.Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Pointer compares boxed values through their pointees. A nil pointer sorts
// before any non-nil one.
func Pointer[T any](c list.Comparator[T]) list.Comparator[*T] {
	return func(a, b *T) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		case b == nil:
			return 1
		}
		return c(*a, *b)
	}
}
