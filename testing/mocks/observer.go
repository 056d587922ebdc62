package mocks

import (
	"testing"
)

type Observer struct {
	ExecutedFunc func(pending int)
}

func BaselineObserver(t *testing.T) *Observer {
	t.Helper()

	o := Observer{
		ExecutedFunc: func(pending int) {},
	}

	return &o
}

func (o *Observer) Executed(pending int) {
	o.ExecutedFunc(pending)
}
