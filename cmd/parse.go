package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resumatch/internal/resume"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Extract a structured profile from a resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := setup(ctx)

		profile, err := svc.loadProfile(ctx, args[0], kindFlag(cmd))
		if err != nil {
			svc.logger.Fatal("loading resume", zap.Error(err))
		}

		if err := writeProfile(cmd.OutOrStdout(), profile); err != nil {
			svc.logger.Fatal("writing profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addKindFlag(parseCmd)
}

// writeProfile prints the profile document with its completeness score.
func writeProfile(w io.Writer, profile *resume.ParsedProfile) error {
	doc, err := profile.Document()
	if err != nil {
		return err
	}
	doc["completeness"] = resume.Completeness(profile)

	return writeJSON(w, doc)
}

func writeJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(pretty))
	return err
}

func addKindFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("kind", "k", "", "document kind: pdf, docx or txt (default is taken from the file extension)")
}

func kindFlag(cmd *cobra.Command) string {
	flag := cmd.Flag("kind")
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}
