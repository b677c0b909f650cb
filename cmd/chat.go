package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resumatch/internal/ai"
	"github.com/spigell/resumatch/internal/ranking"
)

const (
	PromptNoJob = "No specific job"
	PromptExit  = "exit"
)

var errExit = errors.New("exit requested")

var chatCmd = &cobra.Command{
	Use:   "chat FILE",
	Short: "Ask the career assistant about a resume and a recommended job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := setup(ctx)

		if svc.assistant == nil {
			svc.logger.Fatal("assistant is not available",
				zap.String("hint", "set ai.enabled and provide the gemini api key"),
			)
		}

		profile, err := svc.loadProfile(ctx, args[0], kindFlag(cmd))
		if err != nil {
			svc.logger.Fatal("loading resume", zap.Error(err))
		}

		var job *ranking.JobMatch
		if id, _ := cmd.Flags().GetInt("job"); id > 0 {
			match, ok := svc.recommender.Score(ctx, profile, id)
			if !ok {
				svc.logger.Fatal("job not found in catalog", zap.Int("job_id", id))
			}
			job = &match
		} else {
			rec := svc.recommender.Rank(ctx, profile)

			job, err = selectJob(rec.Jobs)
			if err != nil {
				if errors.Is(err, errExit) {
					return
				}
				svc.logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := converse(ctx, svc, cmd.OutOrStdout(), ai.BuildContext(profile, job)); err != nil && !errors.Is(err, errExit) {
			svc.logger.Fatal("exiting", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	addKindFlag(chatCmd)

	chatCmd.Flags().IntP("job", "J", 0, "catalog job id to discuss, skipping the job selection")
}

// selectJob returns nil when the user chats without a target job.
func selectJob(jobs []ranking.JobMatch) (*ranking.JobMatch, error) {
	items := make([]string, 0, len(jobs)+2)
	for _, job := range jobs {
		items = append(items, fmt.Sprintf("%d %s / %s / %d%%", job.ID, job.Title, job.Company, job.MatchScore))
	}
	items = append(items, PromptNoJob, PromptExit)

	jobPrompt := promptui.Select{
		Label: "Choose a job to discuss and press ENTER",
		Items: items,
	}

	idx, selected, err := jobPrompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil, errExit
		}
		return nil, err
	}

	switch selected {
	case PromptExit:
		return nil, errExit
	case PromptNoJob:
		return nil, nil
	default:
		return &jobs[idx], nil
	}
}

// converse answers questions until the user types exit.
func converse(ctx context.Context, svc *services, w io.Writer, c *ai.Context) error {
	queryPrompt := promptui.Prompt{
		Label: "Ask (type exit to quit)",
	}

	for {
		query, err := queryPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return errExit
			}
			return err
		}

		query = strings.TrimSpace(query)
		switch {
		case query == "":
			continue
		case strings.EqualFold(query, PromptExit):
			return errExit
		}

		answer, err := svc.assistant.Ask(ctx, query, c)
		if err != nil {
			svc.logger.Error("assistant request failed", zap.Error(err))
			answer = ai.FallbackResponse
		}

		fmt.Fprintln(w, answer)
	}
}
