package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdfeedback"
)

// PageConverter is the part of *mdfeedback.Converter the CLI drives.
type PageConverter interface {
	Convert(ctx context.Context, input mdfeedback.Input) (*mdfeedback.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*mdfeedback.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (PageConverter, error)
	Release(PageConverter)
	Size() int
	Close() error
}

// poolAdapter exposes *mdfeedback.ConverterPool as a Pool.
type poolAdapter struct {
	pool *mdfeedback.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func newConverterPool(size int, opts []mdfeedback.Option) Pool {
	return &poolAdapter{pool: mdfeedback.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (PageConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics on a converter the pool did not hand out.
func (a *poolAdapter) Release(c PageConverter) {
	conv, ok := c.(*mdfeedback.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
