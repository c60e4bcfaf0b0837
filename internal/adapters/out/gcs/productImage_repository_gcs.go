// backend/internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// ProductImageRepositoryGCS is a GCS adapter for product images (object storage).
//
// ✅ Recommended layout (single bucket):
// - bucket: <project>-product-images
// - objectPath: products/{productId}
//
// Public access:
//   - If the bucket has IAM "allUsers: Storage Object Viewer" (uniform access),
//     uploaded objects become publicly readable without per-object ACL changes.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

func (r *ProductImageRepositoryGCS) bucket() (*storage.BucketHandle, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("productImage_repository_gcs: storage client is nil")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return nil, errors.New("productImage_repository_gcs: bucket is empty")
	}
	return r.Client.Bucket(b), nil
}

// Upload writes image bytes and returns the public URL.
// Overwrites any existing object at objectPath (one image per product).
func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, objectPath string, contentType string, data []byte) (string, error) {
	bh, err := r.bucket()
	if err != nil {
		return "", err
	}

	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" {
		return "", errors.New("productImage_repository_gcs: objectPath is empty")
	}
	if len(data) == 0 {
		return "", errors.New("productImage_repository_gcs: data is empty")
	}

	w := bh.Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("productImage_repository_gcs: write object %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("productImage_repository_gcs: close writer %s: %w", obj, err)
	}

	return r.publicURL(obj), nil
}

// Delete removes the object. Absent objects are treated as success (idempotent).
func (r *ProductImageRepositoryGCS) Delete(ctx context.Context, objectPath string) error {
	bh, err := r.bucket()
	if err != nil {
		return err
	}

	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" {
		return errors.New("productImage_repository_gcs: objectPath is empty")
	}

	err = bh.Object(obj).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

func (r *ProductImageRepositoryGCS) publicURL(objectPath string) string {
	base := strings.TrimRight(strings.TrimSpace(r.PublicBaseURL), "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return fmt.Sprintf("%s/%s/%s", base, r.Bucket, objectPath)
}
