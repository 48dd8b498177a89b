package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dom/hero-companion/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "report":
		reportCmd(apiURL, args)
	case "events":
		eventsCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Planner - Development tool for checking advisor output against a saved profile

USAGE:
  planner <command> [options]

COMMANDS:
  report    Upload a user data file under a throwaway account and print every recommendation
  events    Print the live event board
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Full report for an exported profile
  planner report --file=userdata.json

  # Project 90 days as a whale and show the top 10 upgrades
  planner report --file=userdata.json --days=90 --profile=whale --limit=10

  # Show which events are running right now
  planner events`)
}

func reportCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	file := fs.String("file", "", "Path to a user data JSON file (required)")
	days := fs.Int("days", 30, "Days to project in the simulation")
	profile := fs.String("profile", "", "Spend profile override for the simulation (whale, low spender, f2p)")
	limit := fs.Int("limit", 5, "Number of upgrade recommendations to print (0 for all)")
	rps := fs.Float64("rps", 5, "Maximum requests per second sent to the API")
	fs.Parse(args)

	if *file == "" {
		fmt.Println("Error: --file is required")
		os.Exit(1)
	}

	data, err := readUserData(*file)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := NewAPIClient(apiURL, *rps)

	fmt.Println("=== Planner: Profile Report ===")
	fmt.Println()

	fmt.Print("Creating throwaway user... ")
	user, token, err := client.RegisterUser(ctx, "Planner")
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (user: %s)\n", user.DisplayName)

	fmt.Print("Uploading profile... ")
	current, err := client.GetProfile(ctx, token)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	saved, err := client.SaveProfile(ctx, token, current.Version, *data)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	stored := saved.Data.Data()
	fmt.Printf("OK (%d heroes, %d formations)\n", len(stored.Roster), len(stored.Queues))

	summary, err := client.Influence(ctx, token)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	} else {
		fmt.Println()
		fmt.Printf("Influence: %d (trend %+.1f%%)\n", summary.Total, summary.TrendPercent)
		for _, q := range summary.Queues {
			fmt.Printf("  %-20s %d\n", displayOr(q.Name, q.QueueID), q.Influence)
		}
	}

	recs, err := client.Upgrades(ctx, token, *limit)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	} else {
		fmt.Println()
		fmt.Println("Upgrade priorities:")
		for i, rec := range recs {
			fmt.Printf("  %d. %-16s score %6.2f  -> Lv %d / %d stars in ~%d days (%s)\n",
				i+1, rec.HeroName, rec.Score, rec.RecommendedLevel, rec.RecommendedStars, rec.TimelineDays, rec.Reason)
		}
	}

	plan, err := client.Resources(ctx, token)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	} else {
		fmt.Println()
		fmt.Printf("Resource plan (%s): %d diamonds/day\n", plan.SpendProfile.DisplayName(), plan.DailyDiamondBudget)
		fmt.Printf("  Focus: %s\n", plan.Focus)
		printList("Events", plan.WeeklyFocusEvents)
		printList("Targets", plan.Targets)
		printList("Warnings", plan.Warnings)
	}

	sim, err := client.Simulate(ctx, token, *days, *profile)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	} else {
		fmt.Println()
		fmt.Printf("Simulation over %d days (%s): %d -> %d (+%d)\n",
			sim.Days, sim.SpendProfile.DisplayName(), sim.CurrentInfluence, sim.ProjectedTotalInfluence, sim.ProjectedDeltaInfluence)
		printList("Milestones", sim.KeyMilestones)
	}

	strategies, err := client.EventStrategies(ctx, token)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	} else {
		fmt.Println()
		fmt.Println("Event strategy:")
		for _, s := range strategies {
			fmt.Printf("  [%s] %s: %s\n", s.Priority, s.EventName, s.Focus)
			for _, action := range s.Actions {
				fmt.Printf("      - %s\n", action)
			}
		}
	}
}

func eventsCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := NewAPIClient(apiURL, 5)
	board, err := client.Events(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Daily reset in %s\n\n", board.TimeUntilReset)
	for _, e := range board.Events {
		status := "inactive"
		if e.State.IsActive {
			status = "ACTIVE"
			if e.State.ActivePhaseName != "" {
				status += " - " + e.State.ActivePhaseName
			}
		}
		fmt.Printf("  %-20s %-32s next: %s\n", e.Name, status, e.Countdown)
	}
}

func readUserData(path string) (*domain.UserData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var data domain.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user data: %w", err)
	}
	return &data, nil
}

func printList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("  %s: %s\n", label, strings.Join(items, "; "))
}

func displayOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
