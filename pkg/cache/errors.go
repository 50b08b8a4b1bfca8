package cache

import "errors"

// ErrMiss indicates the key is absent or expired.
var ErrMiss = errors.New("cache miss")
