package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resumatch/internal/ranking"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend FILE",
	Short: "Rank catalog jobs against a resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := setup(ctx)

		profile, err := svc.loadProfile(ctx, args[0], kindFlag(cmd))
		if err != nil {
			svc.logger.Fatal("loading resume", zap.Error(err))
		}

		rec := svc.recommender.Rank(ctx, profile)

		if err := writeJSON(cmd.OutOrStdout(), rec); err != nil {
			svc.logger.Fatal("writing recommendation", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	addKindFlag(recommendCmd)

	recommendCmd.Flags().IntP("limit", "l", ranking.DefaultConfig().Limit, "maximum number of jobs to recommend")
	viper.BindPFlag("ranking.limit", recommendCmd.Flags().Lookup("limit"))
}
