package quote

import "errors"

var ErrInvalidResultShape = errors.New("result must have exactly one of the keys \"" + SuccessKey + "\" or \"" + FailureKey + "\"")
