package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/ports"
)

var (
	overdueColor = color.New(color.FgRed, color.Bold)
	dueColor     = color.New(color.FgRed)
	soonColor    = color.New(color.FgYellow)
	normalColor  = color.New(color.FgGreen)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

func urgencyColor(u period.Urgency) *color.Color {
	switch u {
	case period.UrgencyOverdue:
		return overdueColor
	case period.UrgencyDue:
		return dueColor
	case period.UrgencySoon:
		return soonColor
	default:
		return normalColor
	}
}

// NewMemberCommand creates the member command
func NewMemberCommand() *cobra.Command {
	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Team roster and current member",
	}

	memberCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			resp, err := rt.svc.Session.Describe(cmd.Context(), clientFlag(cmd))
			if err != nil {
				return err
			}
			for _, name := range resp.Known {
				marker := "  "
				if name == resp.Name {
					marker = "* "
				}
				cmd.Println(marker + name)
			}
			return nil
		},
	})

	memberCmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Print the member this client acts as",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			name, err := rt.svc.Session.CurrentMember(cmd.Context(), clientFlag(cmd))
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("no team members configured")
			}
			cmd.Println(name)
			return nil
		},
	})

	memberCmd.AddCommand(&cobra.Command{
		Use:   "use NAME",
		Short: "Switch the member this client acts as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.svc.Session.SetCurrentMember(cmd.Context(), clientFlag(cmd), args[0]); err != nil {
				return err
			}
			cmd.Printf("Now acting as %s\n", args[0])
			return nil
		},
	})

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			role, _ := cmd.Flags().GetString("role")
			m, err := rt.svc.Members.CreateMember(cmd.Context(), ports.CreateMemberRequest{Name: args[0], Role: role})
			if err != nil {
				return err
			}
			cmd.Printf("Member %s added (%s)\n", m.Name, m.ID)
			return nil
		},
	}
	add.Flags().String("role", "", "Member role")
	memberCmd.AddCommand(add)

	return memberCmd
}

// NewTaskCommand creates the task command
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect and remove tasks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			var filter ports.TaskFilter
			if v, _ := cmd.Flags().GetString("assignee"); v != "" {
				filter.Assignee = &v
			}
			if v, _ := cmd.Flags().GetString("status"); v != "" {
				status := entities.TaskStatus(v)
				filter.Status = &status
			}
			if v, _ := cmd.Flags().GetString("month"); v != "" {
				filter.Month = &v
			}

			tasks, err := rt.svc.Tasks.ListTasks(cmd.Context(), filter)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	list.Flags().String("assignee", "", "Only tasks of this member")
	list.Flags().String("status", "", "todo, in_progress or done")
	list.Flags().String("month", "", "Due month as YYYY-MM")
	taskCmd.AddCommand(list)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			task, err := rt.svc.Tasks.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %q?", task.Title)) {
				return entities.ErrConfirmationRequired
			}

			if err := rt.svc.Tasks.DeleteTask(cmd.Context(), task.ID); err != nil {
				return err
			}
			cmd.Println("Task deleted")
			return nil
		},
	}
	del.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	taskCmd.AddCommand(del)

	return taskCmd
}

// confirm asks a yes/no question on out and reads the answer from in
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func printTasks(w io.Writer, tasks []entities.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "%s  %-10s %-11s %-8s %s (%s)\n", t.ID, t.DueDate, t.Status, t.Priority, t.Title, t.Assignee)
	}
}

// NewCalendarCommand creates the calendar command
func NewCalendarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Print a month with the number of tasks due each day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			var m *services.CalendarMonth
			if len(args) == 1 {
				t, perr := time.Parse("2006-01", args[0])
				if perr != nil {
					return fmt.Errorf("%w: month must be YYYY-MM", entities.ErrInvalidDate)
				}
				m, err = rt.svc.Calendar.Month(cmd.Context(), t.Year(), int(t.Month()))
			} else {
				m, err = rt.svc.Calendar.CurrentMonth(cmd.Context())
			}
			if err != nil {
				return err
			}
			printCalendar(cmd.OutOrStdout(), m)
			return nil
		},
	}
	return cmd
}

func printCalendar(w io.Writer, m *services.CalendarMonth) {
	headerColor.Fprintf(w, "%d-%02d\n", m.Year, m.Month)
	fmt.Fprintln(w, " Sun  Mon  Tue  Wed  Thu  Fri  Sat")
	for i, cell := range m.Cells {
		switch {
		case cell.IsBlank():
			fmt.Fprint(w, "     ")
		case len(cell.Tasks) > 0:
			c := normalColor
			if cell.Date == m.Today {
				c = dueColor
			}
			c.Fprintf(w, " %2d%-2s", cell.Day, fmt.Sprintf("+%d", len(cell.Tasks)))
		case cell.Date == m.Today:
			headerColor.Fprintf(w, " %2d* ", cell.Day)
		default:
			fmt.Fprintf(w, " %2d  ", cell.Day)
		}
		if i%7 == 6 {
			fmt.Fprintln(w)
		}
	}
	if len(m.Cells)%7 != 0 {
		fmt.Fprintln(w)
	}
}

// NewDeadlinesCommand creates the deadlines command
func NewDeadlinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deadlines",
		Short: "Open tasks due within three days, plus overdue ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			overdue, err := rt.svc.Tasks.OverdueTasks(cmd.Context())
			if err != nil {
				return err
			}
			upcoming, err := rt.svc.Tasks.UpcomingDeadlines(cmd.Context())
			if err != nil {
				return err
			}

			all := append(aggregate.WithCountdowns(overdue, rt.svc.Clock.Now()), upcoming...)
			printDeadlines(cmd.OutOrStdout(), all)
			return nil
		},
	}
}

func printDeadlines(w io.Writer, deadlines []aggregate.Deadline) {
	if len(deadlines) == 0 {
		fmt.Fprintln(w, "Nothing due")
		return
	}
	for _, d := range deadlines {
		urgencyColor(d.Countdown.Urgency).Fprintf(w, "%-6s", d.Countdown.Label)
		fmt.Fprintf(w, " %s  %s (%s)\n", d.Task.DueDate, d.Task.Title, d.Task.Assignee)
	}
}

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the weekly or monthly report as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := quietRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			kind, _ := cmd.Flags().GetString("period")
			text, err := rt.svc.Reports.Text(cmd.Context(), period.Kind(kind))
			if err != nil {
				return err
			}
			cmd.Print(text)

			if copyOut, _ := cmd.Flags().GetBool("copy"); copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("failed to copy report: %w", err)
				}
				cmd.PrintErrln("Report copied to clipboard")
			}
			return nil
		},
	}
	cmd.Flags().String("period", string(period.Weekly), "weekly or monthly")
	cmd.Flags().Bool("copy", false, "Also copy the report to the clipboard")
	return cmd
}
