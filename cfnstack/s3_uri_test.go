package cfnstack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestS3URIFromString(t *testing.T) {
	tests := []struct {
		uri           string
		bucket        string
		keyComponents []string
		roundTrip     string
	}{
		{"s3://mybucket", "mybucket", nil, "s3://mybucket"},
		{"s3://mybucket/", "mybucket", nil, "s3://mybucket"},
		{"s3://mybucket/mydir", "mybucket", []string{"mydir"}, "s3://mybucket/mydir"},
		{"s3://mybucket/mydir/", "mybucket", []string{"mydir"}, "s3://mybucket/mydir"},
		{"s3://mybucket/my/deep/dir", "mybucket", []string{"my", "deep", "dir"}, "s3://mybucket/my/deep/dir"},
	}

	for _, test := range tests {
		uri, err := S3URIFromString(test.uri)
		if err != nil {
			t.Errorf("valid s3 uri %q was rejected: %v", test.uri, err)
			continue
		}
		if uri.Bucket() != test.bucket {
			t.Errorf("unexpected bucket for %q: %s", test.uri, uri.Bucket())
		}
		if diff := cmp.Diff(test.keyComponents, uri.KeyComponents()); diff != "" {
			t.Errorf("unexpected key components for %q (-want +got):\n%s", test.uri, diff)
		}
		if uri.String() != test.roundTrip {
			t.Errorf("unexpected string form for %q: %s", test.uri, uri)
		}
	}
}

func TestS3URIFromStringRejectsMalformed(t *testing.T) {
	for _, uri := range []string{"", "mybucket", "s3://", "s3:///mydir", "http://mybucket/mydir"} {
		if _, err := S3URIFromString(uri); err == nil {
			t.Errorf("malformed s3 uri %q was accepted", uri)
		}
	}
}
