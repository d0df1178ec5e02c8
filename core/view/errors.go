package view

import "errors"

var (
	ErrEmptyName   = errors.New("view: empty view name")
	ErrInvalidPath = errors.New("view: invalid view path")
)
