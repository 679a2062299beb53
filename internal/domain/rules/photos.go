package rules

const (
	// MaxPhotoSizeBytes is the hard cap on a single uploaded image (5 MiB).
	MaxPhotoSizeBytes = 5 * 1024 * 1024

	// MaxPhotosPerUser caps how many images a user may keep stored.
	MaxPhotosPerUser = 10
)

var allowedPhotoContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

func AllowedPhotoContentType(contentType string) bool {
	_, ok := allowedPhotoContentTypes[contentType]
	return ok
}

func AllowedPhotoSize(sizeBytes int64) bool {
	return sizeBytes > 0 && sizeBytes <= MaxPhotoSizeBytes
}
