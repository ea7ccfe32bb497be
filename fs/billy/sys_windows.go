package billy

import "io/fs"

//nolint:revive
func platformInfo(fi fs.FileInfo, osPath string) sysInfo {
	return sysInfo{}
}
