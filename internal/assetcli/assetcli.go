// Package assetcli implements the command set of the assets tool: publishing
// the frontend build to the S3 bucket and inspecting what is there.
package assetcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/todoweb/internal/server/services"
)

// Assets is the part of services.AssetService the commands need.
type Assets interface {
	UploadFile(ctx context.Context, filePath, key, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	SyncDirectory(ctx context.Context, dir, prefix string) (services.SyncResult, error)
}

var ErrUsage = errors.New("usage error")

const usage = `Available commands:
  sync <dir> [prefix]                  upload every file below dir
  upload <file> <key> [content-type]   upload a single file
  list [prefix]                        list keys
  delete <key>                         delete a key
  url <key> [expiry]                   print a presigned download URL (e.g. 15m)`

// Run executes the command in args[0] with its operands and writes results
// to out.
func Run(ctx context.Context, a Assets, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(out, usage)
		return nil
	case "sync":
		return runSync(ctx, a, rest, out)
	case "upload":
		return runUpload(ctx, a, rest, out)
	case "list":
		return runList(ctx, a, rest, out)
	case "delete":
		return runDelete(ctx, a, rest, out)
	case "url":
		return runURL(ctx, a, rest, out)
	default:
		fmt.Fprintln(out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func runSync(ctx context.Context, a Assets, args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: sync <dir> [prefix]", ErrUsage)
	}

	prefix := ""
	if len(args) == 2 {
		prefix = args[1]
	}

	res, err := a.SyncDirectory(ctx, args[0], prefix)
	fmt.Fprintf(out, "uploaded %d/%d files\n", res.Uploaded, res.Total)
	return err
}

func runUpload(ctx context.Context, a Assets, args []string, out io.Writer) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: upload <file> <key> [content-type]", ErrUsage)
	}

	contentType := ""
	if len(args) == 3 {
		contentType = args[2]
	}

	if err := a.UploadFile(ctx, args[0], args[1], contentType); err != nil {
		return err
	}
	fmt.Fprintf(out, "uploaded %s\n", args[1])
	return nil
}

func runList(ctx context.Context, a Assets, args []string, out io.Writer) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: list [prefix]", ErrUsage)
	}

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	keys, err := a.List(ctx, prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(out, k)
	}
	return nil
}

func runDelete(ctx context.Context, a Assets, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <key>", ErrUsage)
	}

	if err := a.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", args[0])
	return nil
}

func runURL(ctx context.Context, a Assets, args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: url <key> [expiry]", ErrUsage)
	}

	var expiry time.Duration
	if len(args) == 2 {
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return fmt.Errorf("%w: bad expiry %q", ErrUsage, args[1])
		}
		expiry = d
	}

	u, err := a.PresignedGetURL(ctx, args[0], expiry)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, u)
	return nil
}
