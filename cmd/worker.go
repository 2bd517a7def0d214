/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/skillmatch-io/apiserver/config"
	"github.com/skillmatch-io/apiserver/internal/mq"
	"github.com/skillmatch-io/apiserver/pkg/logger"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command. It consumes graded-submission
// events from the configured broker and logs them; downstream consumers
// (mail, analytics) hang off the same channel.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume graded-submission events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.New(cfg.Env, cfg.LogLevel)

		events, err := mq.NewFromConfig(cmd.Context(), cfg.MQ)
		if err != nil {
			return err
		}
		if events == nil {
			return errors.New("MQ_DRIVER is required for the worker")
		}
		defer func() {
			_ = events.Close()
		}()

		log.Info().Str("channel", mq.ChannelSubmissionGraded).Msg("worker listening")

		return events.Subscribe(cmd.Context(), mq.ChannelSubmissionGraded, func(ctx context.Context, msg mq.Message) error {
			var event mq.SubmissionGradedEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				log.Error().Err(err).Str("msg_id", msg.ID).Msg("malformed graded event")
				return nil
			}

			log.Info().
				Str("kind", event.Kind).
				Int("submission_id", event.SubmissionID).
				Int("user_id", event.UserID).
				Int("score", event.Score).
				Str("verdict", event.Verdict).
				Str("skill_awarded", event.SkillAwarded).
				Msg("submission graded")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
