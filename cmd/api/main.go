package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/teamboard/core/cmd/api/commands"
	_ "github.com/teamboard/core/docs"
)

// @title TeamBoard API
// @version 1.0
// @description Shared task board, calendar, meetings, ideas, KPIs and reports for a small team

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ClientID
// @in header
// @name X-Client-ID
// @description Identifies the browser or terminal so each one keeps its own current member.

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamboard",
		Short: "TeamBoard server and terminal client",
		Long:  `TeamBoard keeps a small team's tasks, deadlines, meetings, ideas, KPIs and reel engagement in one place and renders weekly and monthly reports.`,
	}

	rootCmd.PersistentFlags().String("client", "", "Client identifier used to remember the current member")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewMemberCommand())
	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewCalendarCommand())
	rootCmd.AddCommand(commands.NewDeadlinesCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
