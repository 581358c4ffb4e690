package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/retention/internal/cli"
	"github.com/at-ishikawa/retention/internal/srs"
)

func newSeedCommand() *cobra.Command {
	var ownerID, contentRef, itemID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a new item due immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			created, err := backend.AddItem(cmd.Context(), ownerID, contentRef, itemID)
			if err != nil {
				return fmt.Errorf("AddItem() > %w", err)
			}
			cli.NewPrinter(cmd.OutOrStdout()).PrintItem(created)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner of the item")
	cmd.Flags().StringVar(&contentRef, "content", "", "reference to the content the item stands for")
	cmd.Flags().StringVar(&itemID, "id", "", "item id; generated when empty")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newReportCommand() *cobra.Command {
	var ownerID string
	var latencyMs int

	cmd := &cobra.Command{
		Use:   "report <item_id> <quality>",
		Short: "Report a review quality (0-5) for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quality, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: quality %q is not a number", srs.ErrInvalidQuality, args[1])
			}

			backend, closeFn, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			result, err := backend.ReportQuality(cmd.Context(), srs.QualityReport{
				ItemID:          args[0],
				OwnerID:         ownerID,
				Quality:         quality,
				ResponseLatency: time.Duration(latencyMs) * time.Millisecond,
				Timestamp:       time.Now(),
			})
			if err != nil {
				return fmt.Errorf("ReportQuality() > %w", err)
			}
			cli.NewPrinter(cmd.OutOrStdout()).PrintSchedule(quality, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner of the item")
	cmd.Flags().IntVar(&latencyMs, "latency-ms", 0, "response time in milliseconds")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newDueCommand() *cobra.Command {
	var ownerID string
	var limit int

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List items due for review, most overdue first",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			items, err := backend.DueItems(cmd.Context(), ownerID, limit)
			if err != nil {
				return fmt.Errorf("DueItems() > %w", err)
			}
			cli.NewPrinter(cmd.OutOrStdout()).PrintDueItems(ownerID, items, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner of the items")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items; the configured default when 0")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newStatsCommand() *cobra.Command {
	var ownerID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show review statistics of an owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			stats, err := backend.Statistics(cmd.Context(), ownerID)
			if err != nil {
				return fmt.Errorf("Statistics() > %w", err)
			}
			cli.NewPrinter(cmd.OutOrStdout()).PrintStatistics(stats)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner of the items")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <item_id>",
		Short: "Show the recorded reviews of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			logs, err := backend.ReviewHistory(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ReviewHistory() > %w", err)
			}
			cli.NewPrinter(cmd.OutOrStdout()).PrintReviewHistory(args[0], logs)
			return nil
		},
	}
}

func newReviewCommand() *cobra.Command {
	var ownerID string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review due items interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			return cli.NewReviewCLI(backend, ownerID, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner of the items")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
