// Command questiongen interactively authors a question set and writes it as JSON or YAML.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"quizset/internal/config"
	"quizset/internal/domain"
	"quizset/internal/logger"
	"quizset/internal/util"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := logger.Initialize(config.LoggerConfig{Level: "info", Env: "development"}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Get().Error("Question set not written", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flags := pflag.NewFlagSet("questiongen", pflag.ContinueOnError)
	flags.SetOutput(out)
	outPath := flags.StringP("out", "o", "", "output file; .yaml or .yml writes YAML, anything else JSON (default <id>.json)")
	id := flags.String("id", "", "set id (default: a new ULID)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		*id = util.NewULID()
	}

	set, err := newPrompter(in, out).askSet(*id)
	if err != nil {
		return fmt.Errorf("failed to read question set: %w", err)
	}

	if errs := domain.ValidateAll(set); errs != nil {
		fmt.Fprintln(out, "\nThe question set is invalid:")
		for _, v := range errs {
			fmt.Fprintf(out, "  %s\n", v.Error())
		}
		return errs
	}

	path := *outPath
	if path == "" {
		path = set.ID + ".json"
	}
	data, err := encode(set, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(out, "Saved %d questions to %s\n", len(set.Questions), path)
	return nil
}

func encode(set domain.QuestionSet, path string) ([]byte, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Marshal(set)
	default:
		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
