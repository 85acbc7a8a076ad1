package wire

import "strings"

// Remote URI schemes are mapped onto the conventional local mount roots the
// surrounding infrastructure provides. Anything else is assumed to already
// be a usable local path.
var schemeMounts = []struct {
	prefix string
	mount  string
}{
	{"gs://", "/gcs/"},
	{"s3://", "/s3/"},
	{"minio://", "/minio/"},
}

// PathForURI derives the local filesystem path for an artifact URI.
func PathForURI(uri string) string {
	for _, m := range schemeMounts {
		if strings.HasPrefix(uri, m.prefix) {
			return m.mount + strings.TrimPrefix(uri, m.prefix)
		}
	}
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}
