// Command validate checks question set files and exits non-zero when any of them is invalid.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"quizset/internal/config"
	"quizset/internal/domain"
	"quizset/internal/loader"
	"quizset/internal/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	if err := logger.Initialize(config.LoggerConfig{Level: "info", Env: "development"}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(exitUsage)
	}
	defer logger.Sync()

	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

// run validates every file or directory in args and prints one line per set.
func run(ctx context.Context, args []string, out io.Writer) int {
	flags := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	flags.SetOutput(out)
	all := flags.BoolP("all", "a", false, "report every violation instead of stopping at the first")
	flags.Usage = func() {
		fmt.Fprintln(out, "usage: validate [--all] <file-or-dir>...")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitUsage
	}

	log := logger.Get()
	paths, err := loader.ListFiles(flags.Args())
	if err != nil {
		log.Error("Failed to list question set files", zap.Error(err))
		fmt.Fprintf(out, "FAIL %v\n", err)
		return exitInvalid
	}

	code := exitOK
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return exitInvalid
		}
		set, err := loader.LoadFile(path)
		if err != nil {
			code = exitInvalid
			fmt.Fprintf(out, "FAIL %s\n", path)
			var shapeErr *loader.ShapeError
			if errors.As(err, &shapeErr) {
				for _, p := range shapeErr.Problems {
					fmt.Fprintf(out, "  %s\n", p)
				}
				continue
			}
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}

		violations := check(set, *all)
		if len(violations) == 0 {
			fmt.Fprintf(out, "ok   %s (%s, %d questions)\n", path, set.ID, len(set.Questions))
			continue
		}
		code = exitInvalid
		fmt.Fprintf(out, "FAIL %s\n", path)
		for _, v := range violations {
			fmt.Fprintf(out, "  %s\n", v.Error())
		}
	}
	log.Debug("Validation finished", zap.Int("files", len(paths)), zap.Int("exit_code", code))
	return code
}

func check(set domain.QuestionSet, all bool) domain.ValidationErrors {
	if all {
		return domain.ValidateAll(set)
	}
	var v *domain.ValidationError
	if errors.As(domain.Validate(set), &v) {
		return domain.ValidationErrors{v}
	}
	return nil
}
