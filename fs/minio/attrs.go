package minio

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// mcAttrsHeader is the user metadata the mc client writes when copying with
// --preserve. Its value looks like
// "atime:1700000000#120000000/gid:100/mode:33188/mtime:1700000000/uid:1000".
const mcAttrsHeader = "X-Amz-Meta-Mc-Attrs"

// posixAttrs holds the decoded mc attributes. Nil and zero fields were absent.
type posixAttrs struct {
	atime time.Time
	mtime time.Time
	uid   *uint32
	gid   *uint32
	mode  *uint32
}

// findAttrs returns the raw mc attribute value from an object's headers or
// listing metadata.
func findAttrs(header http.Header, userMeta map[string]string) string {
	if v := header.Get(mcAttrsHeader); v != "" {
		return v
	}
	for k, v := range userMeta {
		if strings.EqualFold(k, mcAttrsHeader) || strings.EqualFold(k, "Mc-Attrs") {
			return v
		}
	}
	return ""
}

// parseAttrs decodes raw. Malformed pairs are skipped.
func parseAttrs(raw string) posixAttrs {
	var a posixAttrs
	if raw == "" {
		return a
	}

	for _, pair := range strings.Split(raw, "/") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}

		switch k {
		case "atime":
			a.atime = parseTime(v)
		case "mtime":
			a.mtime = parseTime(v)
		case "uid":
			a.uid = parseUint32(v, 10)
		case "gid":
			a.gid = parseUint32(v, 10)
		case "mode":
			a.mode = parseUint32(v, 10)
		}
	}
	return a
}

// parseTime decodes "sec" or "sec#nsec".
func parseTime(v string) time.Time {
	secStr, nsecStr, _ := strings.Cut(v, "#")

	sec, err := strconv.ParseInt(secStr, 10, 64)
	if err != nil {
		return time.Time{}
	}

	var nsec int64
	if nsecStr != "" {
		if nsec, err = strconv.ParseInt(nsecStr, 10, 64); err != nil {
			nsec = 0
		}
	}
	return time.Unix(sec, nsec)
}

func parseUint32(v string, base int) *uint32 {
	n, err := strconv.ParseUint(v, base, 32)
	if err != nil {
		return nil
	}
	u := uint32(n)
	return &u
}
