package cfnstack

import (
	"fmt"
	"strings"
)

// S3URI is a parsed "s3://bucket" or "s3://bucket/dir" location under
// which oversized stack templates are uploaded.
type S3URI struct {
	bucket    string
	directory string
}

func S3URIFromString(uri string) (S3URI, error) {
	rest := strings.TrimPrefix(uri, "s3://")
	if rest == uri || rest == "" {
		return S3URI{}, fmt.Errorf("failed to parse s3 uri(=%s): The valid uri pattern for it is s3://mybucket/mydir or s3://mybucket", uri)
	}

	bucket := rest
	directory := ""
	if i := strings.IndexByte(rest, '/'); i != -1 {
		bucket = rest[:i]
		directory = strings.Trim(rest[i+1:], "/")
	}
	if bucket == "" {
		return S3URI{}, fmt.Errorf("failed to parse s3 uri(=%s): The valid uri pattern for it is s3://mybucket/mydir or s3://mybucket", uri)
	}

	return S3URI{
		bucket:    bucket,
		directory: directory,
	}, nil
}

func (u S3URI) Bucket() string {
	return u.bucket
}

// KeyComponents returns the directory part as object key path
// components, if any.
func (u S3URI) KeyComponents() []string {
	if u.directory == "" {
		return nil
	}
	return strings.Split(u.directory, "/")
}

func (u S3URI) String() string {
	return fmt.Sprintf("s3://%s", strings.Join(append([]string{u.bucket}, u.KeyComponents()...), "/"))
}
