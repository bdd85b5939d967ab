package cmds

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/goliatone/go-tourneyform"
	"github.com/goliatone/go-tourneyform/internal/logger"
	"github.com/goliatone/go-tourneyform/pkg/prompt"
	"github.com/goliatone/go-tourneyform/pkg/submit"
)

var (
	submitCollection string
	submitValues     []string
	submitYes        bool
	submitNoInput    bool

	// newPromptDriver is replaced in tests.
	newPromptDriver = func(cmd *cobra.Command) prompt.PromptDriver {
		return prompt.NewSurveyDriver(cmd.OutOrStdout())
	}
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Fill in a record and upload it",
	Long: "Pick a collection, enter its fields and upload the record.\n" +
		"Values given with --set are used as is; the rest are prompted for unless --no-input is set.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, span := tracer.Start(cmd.Context(), "submitCmd")
		defer span.End()

		preset, err := parseAssignments(submitValues)
		if err != nil {
			return ExitErrorWrap(ExitUsage, err)
		}

		client, err := submit.NewHTTPClient(cfg.API.BaseURL,
			submit.WithPath(cfg.API.Path),
			submit.WithTimeout(cfg.API.Timeout),
			submit.WithClientLogger(logger.Logger),
		)
		if err != nil {
			return ExitErrorWrap(ExitUsage, err)
		}

		session, err := tourneyform.NewSession(client,
			tourneyform.WithRegistry(registry),
			tourneyform.WithLogger(logger.Logger),
			tourneyform.WithSubmitOptions(submit.WithResetDelay(cfg.Submit.ResetDelay)),
		)
		if err != nil {
			return err
		}

		runner := prompt.NewRunner(prompt.WithPromptDriver(newPromptDriver(cmd)))

		switch {
		case submitCollection != "":
			session.SelectCollection(submitCollection)
		case !submitNoInput:
			if _, err := runner.ChooseCollection(ctx, session); err != nil {
				return promptExit(err)
			}
		}
		span.SetAttributes(attribute.String("collection", session.Collection()))

		if submitNoInput {
			err = runner.Apply(session, preset)
		} else {
			err = runner.FillFields(ctx, session, preset)
		}
		if err != nil {
			return promptExit(err)
		}

		if !submitYes && !submitNoInput {
			ok, err := runner.Confirm(ctx, fmt.Sprintf("Upload to %s?", session.Collection()))
			if err != nil {
				return promptExit(err)
			}
			if !ok {
				return ExitErrorWrap(ExitAborted, nil)
			}
		}

		status := session.Submit(ctx)
		if err := runner.ShowStatus(ctx, status); err != nil {
			return err
		}
		if status.State != submit.StateSuccess {
			span.RecordError(status.Err)
			span.SetStatus(codes.Error, status.Message)
			return ExitErrorWrap(ExitFailed, nil)
		}
		span.SetStatus(codes.Ok, status.Message)
		return nil
	},
}

func promptExit(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return ExitErrorWrap(ExitAborted, nil)
	}
	if errors.Is(err, prompt.ErrInvalidValue) || errors.Is(err, prompt.ErrUnknownField) {
		return ExitErrorWrap(ExitUsage, err)
	}
	return err
}

// parseAssignments turns repeated name=value flags into a map. The last
// assignment of a name wins.
func parseAssignments(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, kv := range values {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=value", kv)
		}
		out[name] = value
	}
	return out, nil
}

func init() {
	submitCmd.Flags().StringVarP(&submitCollection, "collection", "c", "", "collection to upload to (prompted when empty)")
	submitCmd.Flags().StringArrayVar(&submitValues, "set", nil, "field value as name=value, repeatable")
	submitCmd.Flags().BoolVarP(&submitYes, "yes", "y", false, "upload without asking for confirmation")
	submitCmd.Flags().BoolVar(&submitNoInput, "no-input", false, "never prompt; use only --set values")
}
