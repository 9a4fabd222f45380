package textenc

import "errors"

// ErrUnknownFormat is returned by New for any format string other than
// "csv" or "json".
var ErrUnknownFormat = errors.New("textenc: unknown output format")
