package app

import "errors"

var (
	ErrNilLogger = errors.New("app: logger cannot be nil")
	ErrNilViews  = errors.New("app: view engine cannot be nil")
)
