package cmd

import "errors"

var ErrNoInput = errors.New("no identifiers given")
var ErrConflictingInput = errors.New("--url and --input-file cannot be combined")
var ErrReadInputFail = errors.New("failed to read input file")
var ErrParseInputFail = errors.New("failed to parse input file")
