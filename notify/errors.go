package notify

import "errors"

var (
	errNoPhone   = errors.New("customer has no phone on record")
	errNoChannel = errors.New("no messaging channel configured")
)
