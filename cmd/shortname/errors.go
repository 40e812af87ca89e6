package main

import "errors"

var (
	ErrUnknownStore  = errors.New("unknown store backend")
	ErrUnknownLocker = errors.New("unknown lock backend")
	ErrNoNames       = errors.New("no names to resolve")
	ErrReadInput     = errors.New("failed to read input file")
)
