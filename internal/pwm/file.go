package pwm

import (
	"fmt"

	"github.com/markusressel/servo2go/internal/util"
)

// FileChannel writes every duty value as decimal text to a file,
// e.g. for a userspace PWM helper reading that file.
type FileChannel struct {
	Path string
}

func NewFileChannel(path string) (*FileChannel, error) {
	filePath, err := util.ExpandHomePath(path)
	if err != nil {
		return nil, err
	}
	return &FileChannel{Path: filePath}, nil
}

func (c *FileChannel) Write(duty uint32) error {
	if err := util.WriteIntToFileAtomic(int(duty), c.Path); err != nil {
		return fmt.Errorf("pwm: write %s: %w", c.Path, err)
	}
	return nil
}

func (c *FileChannel) Close() error {
	return c.Write(0)
}
