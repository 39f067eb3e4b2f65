package fsname

// https://support.microsoft.com/en-us/office/restrictions-and-limitations-in-onedrive-and-sharepoint-64883a5d-228e-48f5-b3d2-eb39e07630fa

var (
	// OneDriveForbiddenFolder may not appear in a OneDrive folder name.
	OneDriveForbiddenFolder = []rune{'"', '*', ':', '<', '>', '?', '/', '\\', '|'}

	// OneDriveForbiddenFile may not appear in a OneDrive file name.
	OneDriveForbiddenFile = []rune{'~', '"', '#', '%', '&', '*', ':', '<', '>', '?', '/', '\\', '{', '|', '}'}

	// OneDriveReservedNames may not be used as a file or folder name.
	//
	// "_vti_" is additionally forbidden anywhere inside a name. Only the
	// whole-name form is enforced here.
	OneDriveReservedNames = []string{
		".lock", "CON", "PRN", "AUX", "NUL",
		"COM0", "COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
		"LPT0", "LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
		"_vti_", "desktop.ini",
	}
)

// OneDrive sanitizes names for OneDrive and SharePoint.
// Leading '~' and leading whitespace are stripped.
type OneDrive struct {
	settings
}

func NewOneDrive(opts ...Option) OneDrive {
	return OneDrive{settings: newSettings(opts)}
}

func (o OneDrive) FilenameTransformer() Transformer {
	return o.pipeline(OneDriveForbiddenFile)
}

func (o OneDrive) FolderTransformer() Transformer {
	return o.pipeline(OneDriveForbiddenFolder)
}

func (o OneDrive) pipeline(forbidden []rune) Transformer {
	return NewBuilder().
		Replace(ReplaceAll(forbidden, o.rp())).
		ReplaceControl(o.rp()).
		StripPrefix(Any(Is('~'), IsWhitespace)).
		Pad(o.padChar(), OneDriveReservedNames, WithBoundary('.')).
		Build()
}
