package cli

import (
	"github.com/studiowebux/monight/internal/config"
	"github.com/studiowebux/monight/internal/remote"
)

// TryHandOff forwards the launch arguments to an already running
// instance. Returns true when the running instance accepted them and
// this process should exit without starting a UI. A stale port file
// (instance crashed without cleanup) is removed so the next launch does
// not retry it.
func TryHandOff(paths []string, page int) bool {
	if len(paths) == 0 {
		return false
	}

	port := config.ReadPortFile()
	if port == 0 {
		return false
	}

	err := remote.Send(port, remote.OpenRequest{Paths: paths, Page: page})
	if err != nil {
		config.RemovePortFile()
		return false
	}
	return true
}
