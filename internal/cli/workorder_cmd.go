package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mainstay/internal/cli/formatter"
	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workorder",
		Aliases: []string{"wo"},
		Short:   "Manage work orders",
	}

	cmd.AddCommand(
		newWorkOrderCreateCmd(app),
		newWorkOrderListCmd(app),
		newWorkOrderTransitionCmd(app, "start", domain.WorkOrderInProgress, "Start a pending work order"),
		newWorkOrderTransitionCmd(app, "complete", domain.WorkOrderCompleted, "Complete a work order and deduct parts"),
		newWorkOrderTransitionCmd(app, "cancel", domain.WorkOrderCancelled, "Cancel a work order"),
	)

	return cmd
}

// parsePartFlag parses "SKU:QTY" into a part line, resolving the SKU.
func parsePartFlag(ctx context.Context, app *App, spec string) (domain.PartLine, error) {
	sku, qtyStr, found := strings.Cut(spec, ":")
	if !found {
		return domain.PartLine{}, fmt.Errorf("invalid part spec %q, expected SKU:QTY", spec)
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return domain.PartLine{}, fmt.Errorf("invalid part quantity in %q: %w", spec, err)
	}
	item, err := app.Inventory.GetBySKU(ctx, sku)
	if err != nil {
		return domain.PartLine{}, err
	}
	return domain.PartLine{InventoryID: item.ID, QuantityRequested: qty}, nil
}

func printShortages(shortages []domain.PartShortage) {
	for _, s := range shortages {
		fmt.Println(formatter.StyleYellow.Render(fmt.Sprintf(
			"Warning: %s (%s) short: requested %d, available %d",
			s.SKU, s.Name, s.Requested, s.Available)))
	}
}

func newWorkOrderCreateCmd(app *App) *cobra.Command {
	var title, description, priority, equipment string
	var parts []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a work order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			w := &domain.WorkOrder{
				Title:       title,
				Description: description,
			}
			if priority != "" {
				w.Priority = domain.WorkOrderPriority(priority)
			}
			if equipment != "" {
				id, err := resolveEquipmentID(ctx, app, equipment)
				if err != nil {
					return err
				}
				w.EquipmentID = &id
			}
			for _, spec := range parts {
				line, err := parsePartFlag(ctx, app, spec)
				if err != nil {
					return err
				}
				w.Parts = append(w.Parts, line)
			}

			shortages, err := app.WorkOrders.Create(ctx, w)
			if err != nil {
				return err
			}

			fmt.Printf("Created work order %s [%s]\n", w.Title, w.ID[:8])
			printShortages(shortages)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Work order title")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, medium, high, critical)")
	cmd.Flags().StringVar(&equipment, "equipment", "", "Equipment ID or serial")
	cmd.Flags().StringArrayVar(&parts, "part", nil, "Requested part as SKU:QTY (repeatable)")

	return cmd
}

func newWorkOrderListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work orders in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.WorkOrders.List(context.Background())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(orders))
			for _, w := range orders {
				rows = append(rows, []string{
					w.ID[:8],
					w.Title,
					formatter.PriorityLabel(w.Priority),
					formatter.WorkOrderStatusLabel(w.Status),
					w.CreatedAt.Format("2006-01-02"),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"ID", "TITLE", "PRIORITY", "STATUS", "CREATED"}, rows))
			return nil
		},
	}
}

func resolveWorkOrderID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("work order ID is required")
	}
	orders, err := app.WorkOrders.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, w := range orders {
		if w.ID == input {
			return w.ID, nil
		}
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("work order not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("work order ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newWorkOrderTransitionCmd(app *App, use string, to domain.WorkOrderStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <workorder>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			w, shortages, err := app.WorkOrders.Transition(ctx, id, to)
			if err != nil {
				return err
			}

			fmt.Printf("Work order %s is now %s\n", w.ID[:8], w.Status)
			printShortages(shortages)
			return nil
		},
	}
}
