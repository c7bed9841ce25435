package regulonmap

import (
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ResolvePath expands a leading ~ and makes the path absolute, so that
// nothing downstream depends on the process working directory.
func ResolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", pfx.Err(err)
	}

	return abs, nil
}
