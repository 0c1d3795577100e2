package list

import "errors"

// ErrAllocation is returned when a node cannot be allocated. The list is left unchanged.
var ErrAllocation = errors.New("unable to allocate list node")

// ErrInvalidArgument is returned for a nil list, a nil comparator or a negative index.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound signals absence from Find and GetAt. It is not a fault.
var ErrNotFound = errors.New("element not found")
