package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/mainstay/internal/cli/formatter"
	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/spf13/cobra"
)

func newEquipmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Manage equipment and maintenance schedules",
	}

	cmd.AddCommand(
		newEquipmentAddCmd(app),
		newEquipmentListCmd(app),
		newEquipmentServiceCmd(app),
		newEquipmentHoursCmd(app),
		newEquipmentUrgentCmd(app),
	)

	return cmd
}

// resolveEquipmentID accepts a full ID, an ID prefix, or a serial number.
func resolveEquipmentID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("equipment ID is required")
	}

	all, err := app.Equipment.List(ctx)
	if err != nil {
		return "", err
	}

	for _, e := range all {
		if e.ID == input || strings.EqualFold(e.SerialNumber, input) {
			return e.ID, nil
		}
	}

	var matches []string
	for _, e := range all {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("equipment not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("equipment ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newEquipmentAddCmd(app *App) *cobra.Command {
	var serial, name, eqType, model, manufacturer, location string
	var intervalValue float64
	var intervalUnit string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a piece of equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Equipment{
				SerialNumber: serial,
				Name:         name,
				Type:         eqType,
				Model:        model,
				Manufacturer: manufacturer,
				Location:     location,
			}
			if intervalUnit != "" {
				e.Interval = &domain.MaintenanceInterval{
					Value: intervalValue,
					Unit:  domain.IntervalUnit(intervalUnit),
				}
			}

			if err := app.Equipment.Create(context.Background(), e); err != nil {
				return err
			}
			fmt.Printf("Registered equipment %s [%s]\n", e.Name, e.SerialNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&serial, "serial", "", "Unique serial number")
	cmd.Flags().StringVar(&name, "name", "", "Equipment name")
	cmd.Flags().StringVar(&eqType, "type", "", "Equipment type")
	cmd.Flags().StringVar(&model, "model", "", "Model")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "Manufacturer")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().Float64Var(&intervalValue, "every", 0, "Maintenance interval value")
	cmd.Flags().StringVar(&intervalUnit, "unit", "", "Maintenance interval unit (days, months, hours)")

	return cmd
}

func newEquipmentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List equipment with maintenance projections",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := app.Equipment.List(context.Background())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(all))
			for _, e := range all {
				proj := app.Equipment.Projection(e)
				due := "-"
				switch {
				case proj.NextDueDate != nil:
					due = proj.NextDueDate.Format("2006-01-02")
				case proj.NextDueHours != nil:
					due = fmt.Sprintf("%.0f h", *proj.NextDueHours)
				}
				remaining := "-"
				if proj.HasDuePoint() {
					remaining = formatter.UrgencyIndicator(proj)
				}
				rows = append(rows, []string{
					e.SerialNumber,
					e.Name,
					formatter.EquipmentStatusLabel(e.Status),
					due,
					remaining,
				})
			}

			fmt.Print(formatter.RenderTable(
				[]string{"SERIAL", "NAME", "STATUS", "NEXT DUE", "REMAINING"}, rows))
			return nil
		},
	}
}

func newEquipmentServiceCmd(app *App) *cobra.Command {
	var hours float64

	cmd := &cobra.Command{
		Use:   "service <equipment>",
		Short: "Record a completed service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEquipmentID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var serviceHours *float64
			if cmd.Flags().Changed("hours") {
				serviceHours = &hours
			}
			e, err := app.Equipment.RecordService(ctx, id, serviceHours)
			if err != nil {
				return err
			}

			if e.NextMaintenanceDate != nil {
				fmt.Printf("Service recorded for %s, next due %s\n",
					e.SerialNumber, e.NextMaintenanceDate.Format("2006-01-02"))
			} else {
				fmt.Printf("Service recorded for %s\n", e.SerialNumber)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Meter reading at service (hours-based policies)")
	return cmd
}

func newEquipmentHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hours <equipment> <reading>",
		Short: "Update the usage meter reading",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEquipmentID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var reading float64
			if _, err := fmt.Sscanf(args[1], "%f", &reading); err != nil {
				return fmt.Errorf("invalid meter reading %q: %w", args[1], err)
			}

			e, err := app.Equipment.UpdateCurrentHours(ctx, id, reading)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s to %.1f hours\n", e.SerialNumber, reading)
			return nil
		},
	}
}

func newEquipmentUrgentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "urgent",
		Short: "List equipment most urgently due for maintenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			urgent, err := app.Equipment.ListUrgent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(urgent) == 0 {
				fmt.Println("No equipment urgently due for maintenance.")
				return nil
			}

			rows := make([][]string, 0, len(urgent))
			for _, u := range urgent {
				overdue := ""
				switch {
				case u.Projection.DaysRemaining != nil && *u.Projection.DaysRemaining < 0:
					overdue = formatter.StyleRed.Render(fmt.Sprintf("%d days overdue", -*u.Projection.DaysRemaining))
				case u.Projection.DaysRemaining != nil:
					overdue = fmt.Sprintf("%d days left", *u.Projection.DaysRemaining)
				case u.Projection.HoursRemaining != nil && *u.Projection.HoursRemaining < 0:
					overdue = formatter.StyleRed.Render(fmt.Sprintf("%.0f h overdue", -*u.Projection.HoursRemaining))
				case u.Projection.HoursRemaining != nil:
					overdue = fmt.Sprintf("%.0f h left", *u.Projection.HoursRemaining)
				}
				rows = append(rows, []string{
					u.Equipment.SerialNumber,
					u.Equipment.Name,
					formatter.UrgencyIndicator(u.Projection),
					overdue,
				})
			}

			fmt.Print(formatter.RenderTable(
				[]string{"SERIAL", "NAME", "REMAINING", "DUE"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of results")
	return cmd
}
