package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard.com/taskboard/internal/cache"
	"taskboard.com/taskboard/internal/gateway"
	"taskboard.com/taskboard/internal/notify"
	"taskboard.com/taskboard/internal/status"
)

var (
	watchServerURL string
	watchUserID    string
	watchBuilding  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the task board and stream reminders",
	Long:  "Loads the task board from the server, prints the visible tasks and streams reminder alerts until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := gateway.NewClient(watchServerURL)
		board := cache.New(client)

		if err := board.Load(ctx); err != nil {
			return fmt.Errorf("failed to load task board: %w", err)
		}

		if watchUserID != "" {
			board.SetUserFilter(watchUserID)
		}
		if watchBuilding != "" {
			board.SetBuildingFilter(watchBuilding)
		}

		now := time.Now().UTC()
		for _, t := range board.VisibleTasks() {
			state := status.Effective(t.Status, t.DueDate, now)
			fmt.Printf("[%-11s] %-40s %s @ %s (due %s)\n",
				state, t.Title,
				board.UserName(t.UserID), board.BuildingName(t.BuildingID),
				t.DueDate.Format(time.DateOnly))
		}

		wsURL := strings.TrimRight(watchServerURL, "/") + "/ws"
		listener, err := notify.Listen(ctx, wsURL, func(e notify.Event) {
			log.Println(notify.AlertText(e))
		})
		if err != nil {
			return fmt.Errorf("failed to connect to reminder channel: %w", err)
		}
		defer listener.Close()

		log.Println("listening for reminders, press Ctrl+C to stop")
		<-ctx.Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchServerURL, "server", "http://127.0.0.1:8080", "task service base URL")
	watchCmd.Flags().StringVar(&watchUserID, "user", "", "only show tasks assigned to this user id")
	watchCmd.Flags().StringVar(&watchBuilding, "building", "", "only show tasks for this building id")
	rootCmd.AddCommand(watchCmd)
}
