package compare

import (
	"testing"

	"github.com/shopspring/decimal"
	"gotest.tools/assert"

	"linkedlist/struct/list"
)

func TestOrdered(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want int
	}{
		{"less", 1, 2, -1},
		{"equal", 2, 2, 0},
		{"greater", 3, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Ordered(tt.a, tt.b), tt.want)
		})
	}
	assert.Equal(t, Ordered("abc", "abd"), -1)
	assert.Equal(t, Ordered(1.5, 1.5), 0)
}

func TestDecimal(t *testing.T) {
	a := decimal.RequireFromString("1.50")
	b := decimal.RequireFromString("1.5")
	assert.Equal(t, Decimal(a, b), 0)
	assert.Equal(t, Decimal(a, decimal.NewFromInt(2)), -1)
}

func TestBytes(t *testing.T) {
	assert.Equal(t, Bytes([]byte("a"), []byte("b")), -1)
	assert.Equal(t, Bytes(nil, []byte{}), 0)
}

func TestReverse(t *testing.T) {
	r := Reverse[int](Ordered[int])
	assert.Equal(t, r(1, 2), 1)
	assert.Equal(t, r(2, 1), -1)
}

func TestPointer(t *testing.T) {
	p := Pointer[int](Ordered[int])
	a, b := 12, 15
	assert.Equal(t, p(&a, &b), -1)
	assert.Equal(t, p(nil, &a), -1)
	assert.Equal(t, p(&a, nil), 1)
	assert.Equal(t, p(nil, nil), 0)
}

func TestWithList(t *testing.T) {
	boxed := make([]*int, 10)
	l := list.New[*int]()
	for i := range boxed {
		v := 12 + i
		boxed[i] = &v
		assert.NilError(t, l.PushBack(&v))
	}
	want := 15
	idx, err := l.Find(&want, Pointer[int](Ordered[int]))
	assert.NilError(t, err)
	assert.Equal(t, idx, 3)

	removed, err := l.RemoveValue(&want, Pointer[int](Ordered[int]))
	assert.NilError(t, err)
	assert.Assert(t, removed)
	assert.Equal(t, *boxed[3], 15)
	assert.Equal(t, l.Len(), 9)

	d := list.Make(decimal.NewFromInt(1), decimal.RequireFromString("2.0"))
	idx, err = d.Find(decimal.NewFromInt(2), Decimal)
	assert.NilError(t, err)
	assert.Equal(t, idx, 1)
}
