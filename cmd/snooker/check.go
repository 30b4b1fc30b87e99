package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mikey/snooker/internal/adapters/filter"
	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/internal/di"
	"github.com/mikey/snooker/internal/ports"
	"github.com/mikey/snooker/pkg/snooker"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Exit codes beyond the generic failure
const (
	exitSpam  = 2
	exitInput = 3
)

type checkFlags struct {
	di.CLIFlags
	author     string
	url        string
	email      string
	body       string
	failOnSpam bool
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [comment-file]",
		Short: "Score a comment read from a YAML or JSON file, stdin, or flags",
		Long: `Score a comment and print the verdict.

The comment is read from the given file, or from stdin when no file is given
and --body is not set. Files are YAML or JSON documents with the keys author,
url, email, body, previously_accepted_for_email,
previously_rejected_for_email and previous_comment_bodies. Flags override the
matching document fields.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			comment, err := loadComment(path, cmd.InOrStdin(), f, cmd.Flags())
			if err != nil {
				return exitError(exitInput, "failed to load comment: %v", err)
			}
			return runCheck(cmd, comment, f)
		},
	}

	flags := cmd.Flags()
	f.BindFlags(flags)
	flags.StringVar(&f.author, "author", "", "Comment author name")
	flags.StringVar(&f.url, "url", "", "URL submitted with the comment")
	flags.StringVar(&f.email, "email", "", "Commenter email address")
	flags.StringVar(&f.body, "body", "", "Comment body (HTML allowed)")
	flags.BoolVar(&f.failOnSpam, "fail-on-spam", false, "Exit with status 2 when the comment is classified as spam")

	return cmd
}

// loadComment builds the comment from the document at path (or stdin) and
// the flags
func loadComment(path string, stdin io.Reader, f *checkFlags, flags *pflag.FlagSet) (*snooker.Comment, error) {
	var req filter.CommentRequest

	if path != "" || !flags.Changed("body") {
		var (
			data []byte
			err  error
		)
		if path != "" {
			data, err = os.ReadFile(path)
		} else {
			data, err = io.ReadAll(stdin)
		}
		if err != nil {
			return nil, err
		}
		// JSON documents are valid YAML
		if err := yaml.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("invalid comment document: %w", err)
		}
	}

	if flags.Changed("author") {
		req.Author = &f.author
	}
	if flags.Changed("url") {
		req.URL = &f.url
	}
	if flags.Changed("email") {
		req.Email = &f.email
	}
	if flags.Changed("body") {
		req.Body = &f.body
	}

	return req.ToComment()
}

func runCheck(cmd *cobra.Command, comment *snooker.Comment, f *checkFlags) error {
	container, err := di.BuildCLIContainer(&f.CLIFlags, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}

	var analysis *core.Analysis
	err = container.Invoke(func(logger *zap.Logger, commentFilter ports.CommentFilter, history core.HistoryRepository) error {
		defer logger.Sync()
		if stopper, ok := history.(interface{ Stop() }); ok {
			defer stopper.Stop()
		}

		var err error
		analysis, err = commentFilter.ProcessComment(cmd.Context(), comment)
		return err
	})
	if err != nil {
		return err
	}

	if f.failOnSpam && analysis.Decision == snooker.StatusSpam {
		return exitError(exitSpam, "comment classified as spam (score %d)", analysis.Result.Score)
	}
	return nil
}
