package export

import "context"

// ObjectInfo is the metadata of one archived report.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations the report
// archive needs.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key, localPath string) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
