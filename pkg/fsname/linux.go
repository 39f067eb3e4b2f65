package fsname

// LinuxForbidden are the only characters Linux refuses in a path component.
var LinuxForbidden = []rune{'/', '\x00'}

// LinuxShellUnsafe are allowed by the kernel but awkward to handle in shells.
// The Linux policy leaves them alone; add them through a Custom profile if needed.
var LinuxShellUnsafe = []rune{'~', '\\', '"'}

// Linux replaces '/' and NUL in both file and folder names.
type Linux struct {
	settings
}

func NewLinux(opts ...Option) Linux {
	return Linux{settings: newSettings(opts)}
}

func (l Linux) FilenameTransformer() Transformer {
	return Replace(ReplaceAll(LinuxForbidden, l.rp()))
}

func (l Linux) FolderTransformer() Transformer {
	return Replace(ReplaceAll(LinuxForbidden, l.rp()))
}
