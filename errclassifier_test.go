// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/bassosimone/errclass"
	"github.com/stretchr/testify/assert"
)

func TestDefaultErrClassifier(t *testing.T) {
	// Should return empty string for nil error
	result := DefaultErrClassifier.Classify(nil)
	assert.Equal(t, "", result)

	// Should classify known errors using errclass
	result = DefaultErrClassifier.Classify(context.DeadlineExceeded)
	assert.Equal(t, errclass.ETIMEDOUT, result)

	// Should return EGENERIC for unknown errors
	result = DefaultErrClassifier.Classify(errors.New("unknown error"))
	assert.Equal(t, errclass.EGENERIC, result)
}

func TestOSErrClassifier(t *testing.T) {
	assert.Equal(t, ResultSuccess, OSErrClassifier(nil))
	assert.Equal(t, ResultLinkBroken, OSErrClassifier(net.ErrClosed))
	assert.Equal(t, ResultTimeout, OSErrClassifier(context.DeadlineExceeded))
	assert.Equal(t, ResultLinkBroken, OSErrClassifier(errors.New("mystery failure")))
}
