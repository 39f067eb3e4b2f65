// Package file stores content on local disk or in Amazon S3 under names
// that the backend is guaranteed to accept.
//
// Every path handed to a Storage is split on '/', and each segment is run
// through an fsname.Policy before it reaches the backend: intermediate
// segments as folder names, the last one as a file name. Callers can pass
// names exactly as users typed them.
//
// # Architecture
//
// The Storage interface provides a consistent API for:
//   - Saving content from any io.Reader
//   - Deleting files and directories
//   - Checking existence
//   - Listing directory contents
//   - Generating public URLs
//
// Two implementations are provided:
//   - LocalStorage: filesystem storage confined to a base directory,
//     sanitized with fsname.NewLinux() by default.
//   - S3Storage: AWS S3 and S3-compatible services (MinIO, Wasabi, etc.),
//     sanitized with fsname.NewS3() by default.
//
// # Usage
//
//	storage, err := file.NewLocalStorage("/srv/uploads", "/files/",
//	    file.WithLocalPolicy(fsname.NewOneDrive()),
//	    file.WithLocalLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	f, err := storage.Save(ctx, "reports/CON.txt", r)
//	// f.RelativePath == "reports/CON_.txt"
//
// S3 storage:
//
//	storage, err := file.NewS3Storage(ctx, file.S3Config{
//	    Bucket: "my-bucket",
//	    Region: "us-east-1",
//	})
//
// # Security
//
//   - A raw ".." segment is rejected with ErrInvalidPath before sanitizing.
//   - Segments that sanitize to "", "." or ".." are rejected as well.
//   - LocalStorage re-checks every resolved path against its base directory.
//   - MIME types are sniffed from content, never taken from the name.
//
// # Errors
//
// Policies without folder rules (Windows) can only store flat names; nested
// paths fail with ErrUnsupportedPolicy joined with fsname.ErrNotSupported.
// S3 failures are classified into ErrFileNotFound, ErrAccessDenied,
// ErrOperationTimeout and the other sentinel errors in this package.
package file
