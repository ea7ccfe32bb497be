//go:build !windows && !linux

package billy

import (
	"io/fs"
	"syscall"
)

func platformInfo(fi fs.FileInfo, _ string) sysInfo {
	var si sysInfo
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		uid, gid := st.Uid, st.Gid
		si.uid, si.gid = &uid, &gid
	}
	return si
}
