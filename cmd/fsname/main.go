// Command fsname sanitizes file and folder names for a target filesystem or
// storage service.
//
// Names come from the arguments, or from standard input one per line, and
// are printed sanitized in the same order:
//
//	fsname -t windows 'NUL.txt' 'report: final?.doc'
//	find . -type f | fsname --path -t onedrive
//
// With --store the arguments are local files that get copied into a
// directory or an S3 bucket under sanitized names:
//
//	fsname -t s3 --store s3://bucket/uploads ./*.pdf
//
// Settings are read from FSNAME_* environment variables and .env; flags
// override them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	err := a.run(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "fsname: %v\n", err)
		os.Exit(1)
	}
}
