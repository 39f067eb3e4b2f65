package fsname

// https://docs.aws.amazon.com/AmazonS3/latest/userguide/object-keys.html

// S3AvoidChars are characters AWS recommends keeping out of object keys,
// plus '/' which would split the segment.
var S3AvoidChars = []rune{'\\', '{', '^', '}', '%', '`', ']', '"', '>', '[', '~', '<', '#', '|', '/'}

// S3DotSegments are segment names that tools normalise away when they
// treat keys as paths.
var S3DotSegments = []string{".", ".."}

// S3 sanitizes a single segment of an S3 object key. File and folder
// segments follow the same rules.
type S3 struct {
	settings
}

func NewS3(opts ...Option) S3 {
	return S3{settings: newSettings(opts)}
}

func (s S3) FilenameTransformer() Transformer {
	return s.pipeline()
}

func (s S3) FolderTransformer() Transformer {
	return s.pipeline()
}

func (s S3) pipeline() Transformer {
	return NewBuilder().
		Replace(ReplaceAll(S3AvoidChars, s.rp())).
		ReplaceControl(s.rp()).
		Pad(s.padChar(), S3DotSegments).
		Build()
}
