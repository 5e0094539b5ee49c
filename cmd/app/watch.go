package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"innkeep/config"
	"innkeep/infras/kafka"
	roomModel "innkeep/internal/domains/room/model"
	"innkeep/shared/constant"
	"innkeep/shared/event"

	"github.com/fatih/color"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
)

var errNoBrokers = errors.New("set KAFKA_BROKERS to watch room events")

var watchGroup string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print room status changes as they are published",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Get()

		client := kafka.New(cfg)
		defer client.Close() //nolint:errcheck

		if !client.Enabled() {
			return errNoBrokers
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		group := watchGroup
		if group == "" {
			group = cfg.Kafka.ConsumerGroup + "-watch"
		}

		client.Consume(ctx, group, cfg.Kafka.Topics.RoomEvents, func(message kafkaGo.Message) {
			printRoomEvent(message)
		})

		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchGroup, "group", "", "consumer group, defaults to <KAFKA_CONSUMER_GROUP>-watch")
}

func statusColor(status string) *color.Color {
	switch roomModel.Status(status) {
	case roomModel.StatusAvailable:
		return color.New(color.FgGreen)
	case roomModel.StatusTempLocked, roomModel.StatusPendingPayment:
		return color.New(color.FgYellow)
	case roomModel.StatusReserved:
		return color.New(color.FgCyan)
	case roomModel.StatusOccupied:
		return color.New(color.FgBlue, color.Bold)
	case roomModel.StatusDirty, roomModel.StatusMaintenance:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgWhite)
	}
}

func printRoomEvent(message kafkaGo.Message) {
	evt, err := kafka.DecodeKafkaMessage[event.RoomEvent](message)
	if err != nil {
		color.New(color.FgRed).Printf("undecodable event on key %s\n", message.Key)

		return
	}

	line := fmt.Sprintf("%s room %-6s %s", evt.At.Format(constant.DateFormat), evt.RoomID, statusColor(evt.Status).Sprint(evt.Status))

	if evt.PreviousStatus != "" {
		line += " (was " + evt.PreviousStatus + ")"
	}

	line += " " + evt.Reason

	if evt.BookingID != "" {
		line += " booking=" + evt.BookingID
	}

	if evt.HolderID != "" {
		line += " holder=" + evt.HolderID
	}

	fmt.Println(line)
}
