package ports

import (
	"context"
	"io"
)

// AssetUploader stores binary content in a remote object store and returns a
// durable, publicly dereferenceable URL. Failures are terminal for the
// enclosing operation; no retry policy exists at this layer.
type AssetUploader interface {
	// UploadImage stores an in-memory image buffer under the profile photo
	// namespace, preserving its content type.
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)

	// UploadRaw streams an opaque binary under the resume namespace. The
	// content is preserved byte-for-byte, not treated as an image.
	UploadRaw(ctx context.Context, r io.Reader, size int64, filename string) (string, error)
}
