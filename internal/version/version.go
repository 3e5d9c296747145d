package version

import (
	"fmt"
	"runtime"
)

// Overridden at link time, e.g.
// -ldflags "-X github.com/projecteru2/uuidstamp/internal/version.VERSION=v1.0.0".
var (
	NAME     = "uuidstamp"
	VERSION  = "unknown"
	REVISION = "HEAD"
	BUILTAT  = "now"
)

func String() string {
	return fmt.Sprintf(
		"%s\nVersion:        %s\nGit hash:       %s\nBuilt:          %s\nGolang version: %s\nOS/Arch:        %s/%s\n",
		NAME, VERSION, REVISION, BUILTAT, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}
