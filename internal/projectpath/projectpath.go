package projectpath

import (
	"path/filepath"
	"runtime"
)

var (
	_, b, _, _ = runtime.Caller(0)

	// Root of the repository, used to locate .env and migrations
	Root = filepath.Join(filepath.Dir(b), "../..")
)
