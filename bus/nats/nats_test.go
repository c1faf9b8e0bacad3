package nats

import (
	"github.com/hupe1980/elicitmesh/core"
)

var _ core.Publisher = (*Publisher)(nil)
