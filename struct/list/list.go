package list

// Comparator is a three-way comparison: negative when a < b, zero when they
// are equal, positive when a > b.
type Comparator[T any] func(a, b T) int

type List[T any] interface {
	PushFront(val T) error
	PushBack(val T) error
	InsertAt(val T, index int) (bool, error)
	RemoveValue(val T, cmp Comparator[T]) (bool, error)
	RemoveAt(index int) (bool, error)
	Find(val T, cmp Comparator[T]) (int, error)
	GetAt(index int) (T, error)
	Len() int
	Clear()
	Front() *Node[T]
	Back() *Node[T]
	Values() []T
}

type options struct {
	maxNodes int
}

type Option func(o *options)

// WithMaxNodes caps the number of nodes the list may hold. Inserts beyond the
// cap fail with ErrAllocation. Zero or a negative value means no cap.
func WithMaxNodes(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxNodes = n
	}
}
