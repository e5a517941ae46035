package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plato/internal/core/domain"
)

var (
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show recorded steering sessions",
	Long: `Without arguments, lists recent steering sessions. With a session ID,
prints every parameter change, command and poll failure recorded in it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.Journal == nil {
		return errors.New("journal not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 1 {
		return showSession(ctx, cmd, svc, args[0])
	}

	sessions, err := svc.Journal.Sessions(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		cmd.Println("No steering sessions recorded.")
		return nil
	}

	cmd.Println("Steering sessions:")
	cmd.Println()
	for _, s := range sessions {
		cmd.Printf("  %s  %s  %s\n", s.ID, s.StartedAt.Local().Format(time.DateTime), sessionDuration(s))
		if in := sessionInputs(s); in != "" {
			cmd.Printf("      %s\n", in)
		}
	}
	return nil
}

func showSession(ctx context.Context, cmd *cobra.Command, svc *Services, id string) error {
	session, err := svc.Journal.Session(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("getting session: %w", err)
	}

	events, err := svc.Journal.Events(ctx, id, historyLimit)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	cmd.Printf("Session:  %s\n", session.ID)
	cmd.Printf("Started:  %s\n", session.StartedAt.Local().Format(time.DateTime))
	cmd.Printf("Duration: %s\n", sessionDuration(*session))
	if in := sessionInputs(*session); in != "" {
		cmd.Printf("Inputs:   %s\n", in)
	}
	cmd.Println()

	if len(events) == 0 {
		cmd.Println("No events recorded.")
		return nil
	}
	for _, ev := range events {
		cmd.Printf("  #%-4d %-17s %s\n", ev.Iteration, ev.Kind, describeEvent(ev))
	}
	return nil
}

func describeEvent(ev domain.SteeringEvent) string {
	switch ev.Kind {
	case domain.EventParameterChanged:
		return fmt.Sprintf("%s = %g", ev.Name, ev.Value)
	case domain.EventCommand:
		return ev.Name
	case domain.EventIgnored:
		if ev.Detail != "" {
			return fmt.Sprintf("%s (%s)", ev.Name, ev.Detail)
		}
		return ev.Name
	default:
		return ev.Detail
	}
}

func sessionDuration(s domain.SteeringSession) string {
	if s.EndedAt.IsZero() {
		return "running"
	}
	return s.EndedAt.Sub(s.StartedAt).Round(time.Millisecond).String()
}

func sessionInputs(s domain.SteeringSession) string {
	switch {
	case s.RhoPath != "" && s.XYZPath != "":
		return s.RhoPath + ", " + s.XYZPath
	case s.RhoPath != "":
		return s.RhoPath
	default:
		return s.XYZPath
	}
}
