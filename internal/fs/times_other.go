//go:build !linux && !darwin

package fs

import (
	"os"
	"time"
)

func createdTime(info os.FileInfo) time.Time { return info.ModTime() }

func accessTime(info os.FileInfo) time.Time { return info.ModTime() }
