package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/store"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of events")
}

var historyCmd = &cobra.Command{
	Use:               "history <name>",
	Short:             "Show a gadget's change and run history",
	Long:              "Show the most recent events for a gadget. Requires the sqlite store.",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeGadgetNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		_, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		reader, ok := s.(store.HistoryReader)
		if !ok {
			return &PreflightError{
				Message:  "history is only kept by the sqlite store",
				Hint:     "Set store.backend: sqlite in the config file or pass --store sqlite",
				NextStep: "gogo --store sqlite history " + args[0],
			}
		}

		events, err := reader.History(ctx, args[0], historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), events)
		}
		if len(events) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No history for %s.\n", args[0])
			return nil
		}

		t := newTable("TIME", "EVENT", "DETAILS")
		for _, event := range events {
			t.add(formatTime(event.Timestamp), formatEventType(event.Type), describeEvent(event))
		}
		return t.render(cmd.OutOrStdout())
	},
}

func describeEvent(event *models.Event) string {
	switch event.Type {
	case models.EventTypeGadgetCreated, models.EventTypeGadgetUpdated:
		var payload models.GadgetSavedPayload
		if json.Unmarshal(event.Payload, &payload) == nil {
			return truncate(payload.Command, 60)
		}
	case models.EventTypeGadgetRenamed:
		var payload models.GadgetRenamedPayload
		if json.Unmarshal(event.Payload, &payload) == nil {
			return fmt.Sprintf("%s -> %s", payload.OldName, payload.NewName)
		}
	case models.EventTypeGadgetRan:
		var payload models.GadgetRanPayload
		if json.Unmarshal(event.Payload, &payload) == nil {
			parts := []string{formatExitCode(payload.ExitCode), payload.Duration, truncate(payload.Command, 50)}
			return strings.Join(parts, " ")
		}
	}
	return "-"
}
