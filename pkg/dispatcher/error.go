package dispatcher

import "errors"

var ErrDispatcherClosed = errors.New("dispatcher closed")
