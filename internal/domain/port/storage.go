package port

import "context"

// ObjectStorage uploads local files into a bucket. UploadFile returns
// the final object key reported by the storage service.
type ObjectStorage interface {
	UploadFile(ctx context.Context, bucket, objectKey, localPath string) (string, error)
}
