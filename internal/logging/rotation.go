package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// maxBackups is the number of rotated copies kept beside each log.
const maxBackups = 5

// rotate shifts filePath to filePath.1, filePath.1 to filePath.2 and so on,
// discarding filePath.<backups>. The caller opens a fresh file afterwards.
func rotate(filePath string, backups int) error {
	name := func(i int) string {
		if i == 0 {
			return filePath
		}
		return filePath + "." + strconv.Itoa(i)
	}

	if err := os.Remove(name(backups)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("logging: rotate remove %s: %w", name(backups), err)
	}
	for i := backups - 1; i >= 0; i-- {
		if err := os.Rename(name(i), name(i+1)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("logging: rotate rename %s -> %s: %w", name(i), name(i+1), err)
		}
	}
	return nil
}
