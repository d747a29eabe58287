package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/chapaquente-api/tracker"
	"github.com/spf13/cobra"
)

var (
	trackAPI      string
	trackToken    string
	trackInterval time.Duration
)

var trackCmd = &cobra.Command{
	Use:   "track <orderId>",
	Short: "Follow an order's status and queue position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		orderID := args[0]
		client := tracker.NewClient(trackAPI, 10*time.Second).WithToken(trackToken)
		state := tracker.NewState()
		poller := tracker.NewPoller(client, state, trackInterval, log.Named("tracker"))
		poller.Track(orderID)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		out := cmd.OutOrStdout()
		err = poller.Run(ctx, func(s *tracker.State) {
			snap, ok := s.Snapshot(orderID)
			if !ok {
				return
			}
			fmt.Fprintf(out, "%s  %-9s  queue at checkout: %d  orders ahead now: %d\n",
				snap.RefreshedAt.Format("15:04:05"), snap.Status, snap.StoredPosition, snap.LivePosition)
			if snap.Status.IsTerminal() {
				cancel()
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	trackCmd.Flags().StringVar(&trackAPI, "api", "http://localhost:3001", "base URL of the ordering API")
	trackCmd.Flags().StringVar(&trackToken, "token", "", "bearer token of the customer, if logged in")
	trackCmd.Flags().DurationVar(&trackInterval, "interval", tracker.DefaultInterval, "polling interval")
	rootCmd.AddCommand(trackCmd)
}
