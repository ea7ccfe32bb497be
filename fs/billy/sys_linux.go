//go:build linux

package billy

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func platformInfo(fi fs.FileInfo, osPath string) sysInfo {
	var si sysInfo

	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return si
	}

	uid, gid := st.Uid, st.Gid
	si.uid, si.gid = &uid, &gid
	si.atime = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)) //nolint:unconvert
	if osPath != "" {
		si.btime = birthTime(osPath)
	}
	return si
}

// birthTime reads the creation time with statx(2). It returns the zero time on
// kernels before 4.11 and on filesystems that do not record one.
func birthTime(osPath string) time.Time {
	var stx unix.Statx_t

	err := unix.Statx(unix.AT_FDCWD, osPath, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
