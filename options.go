package ronfmt

import "fmt"

const defaultMaxDepth = 1000

// Option configures parsing, formatting and decoding.
type Option func(*options) error

type options struct {
	maxDepth int
}

func newOptions(opts []Option) (*options, error) {
	o := &options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth returns an Option that sets the maximum nesting depth of lists,
// maps, tuples and structs. Deeper documents are rejected instead of
// exhausting the stack.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("ronfmt: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
