package fsname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsname/pkg/fsname"
)

func TestSanitize(t *testing.T) {
	t.Run("drives the pipeline to completion", func(t *testing.T) {
		tr := fsname.Pad('_', []string{"NUL"})
		assert.Equal(t, "NUL_", fsname.Sanitize("NUL", tr))
	})

	t.Run("local filesystem slash", func(t *testing.T) {
		assert.Equal(t, "�", fsname.SanitizeFilename("/", fsname.NewLinux()))
	})
}

func TestTrySanitizeFolder(t *testing.T) {
	t.Run("supported", func(t *testing.T) {
		out, err := fsname.TrySanitizeFolder("a/b", fsname.NewLinux(fsname.WithReplacement('-')))
		require.NoError(t, err)
		assert.Equal(t, "a-b", out)
	})

	t.Run("unrelated panics propagate", func(t *testing.T) {
		p := fsname.NewCustom("boom", nil, fsname.TransformerFunc(func(fsname.Stream) fsname.Stream {
			panic("boom")
		}))
		assert.PanicsWithValue(t, "boom", func() { _, _ = fsname.TrySanitizeFolder("x", p) })
	})
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		policy   fsname.Policy
		input    string
		expected string
	}{
		{
			name:     "linux leaves separators alone",
			policy:   fsname.NewLinux(),
			input:    "/srv/data/file.txt",
			expected: "/srv/data/file.txt",
		},
		{
			name:     "onedrive distinguishes files and folders",
			policy:   fsname.NewOneDrive(),
			input:    "~team #1/ CON.txt",
			expected: "team #1/CON_.txt",
		},
		{
			name:     "s3 pads dot segments",
			policy:   fsname.NewS3(),
			input:    "../x/..",
			expected: ".._/x/.._",
		},
		{
			name:     "single segment on windows",
			policy:   fsname.NewWindows(),
			input:    "NUL",
			expected: "NUL_",
		},
		{
			name:     "empty path",
			policy:   fsname.NewLinux(),
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := fsname.SanitizePath(tt.input, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	t.Run("windows folders are unsupported", func(t *testing.T) {
		_, err := fsname.SanitizePath("dir/NUL", fsname.NewWindows())
		assert.ErrorIs(t, err, fsname.ErrNotSupported)
	})
}
