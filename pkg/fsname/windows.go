package fsname

// https://learn.microsoft.com/en-us/windows/win32/fileio/naming-a-file

// WindowsReservedChars may not appear anywhere in a Windows file name.
var WindowsReservedChars = []rune{'<', '>', ':', '"', '/', '\\', '|', '?', '*', '\x00'}

// WindowsReservedNames may not be used as a file name, with or without an
// extension: NUL, NUL.txt and NUL.txt.txt are all invalid.
var WindowsReservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM0", "COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT0", "LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

// Windows sanitizes file names for Win32 filesystems. Folder names are not
// supported.
type Windows struct {
	settings
}

func NewWindows(opts ...Option) Windows {
	return Windows{settings: newSettings(opts)}
}

func (w Windows) FilenameTransformer() Transformer {
	// TODO: trailing dots and spaces are forbidden too; strip them once a
	// suffix stripper exists.
	return NewBuilder().
		Replace(ReplaceAll(WindowsReservedChars, w.rp())).
		ReplaceControl(w.rp()).
		StripPrefix(IsWhitespace).
		Pad(w.padChar(), WindowsReservedNames, WithBoundary('.')).
		Build()
}

func (w Windows) FolderTransformer() Transformer {
	return unsupported("windows", "folder names")
}
