package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/mainstay/internal/cli/formatter"
	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newInventoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage spare parts stock",
	}

	cmd.AddCommand(
		newInventoryAddCmd(app),
		newInventoryListCmd(app),
		newInventoryAdjustCmd(app),
		newInventoryLowCmd(app),
	)

	return cmd
}

func newInventoryAddCmd(app *App) *cobra.Command {
	var sku, name, description, location, cost string
	var quantity, minQuantity int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a spare part to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			unitCost := decimal.Zero
			if cost != "" {
				parsed, err := decimal.NewFromString(cost)
				if err != nil {
					return fmt.Errorf("invalid unit cost %q: %w", cost, err)
				}
				unitCost = parsed
			}

			item := &domain.InventoryItem{
				SKU:            sku,
				Name:           name,
				Description:    description,
				Location:       location,
				QuantityOnHand: quantity,
				MinQuantity:    minQuantity,
				UnitCost:       unitCost,
			}
			if err := app.Inventory.Create(context.Background(), item); err != nil {
				return err
			}
			fmt.Printf("Added part %s [%s]\n", item.Name, item.SKU)
			return nil
		},
	}

	cmd.Flags().StringVar(&sku, "sku", "", "Unique SKU (stored upper-case)")
	cmd.Flags().StringVar(&name, "name", "", "Part name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&location, "location", "", "Storage location")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Initial quantity on hand")
	cmd.Flags().IntVar(&minQuantity, "min", 0, "Reorder threshold")
	cmd.Flags().StringVar(&cost, "cost", "", "Unit cost")

	return cmd
}

func newInventoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List parts with stock levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			items, err := app.Inventory.List(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				qty := strconv.Itoa(item.QuantityOnHand)
				if item.BelowMin() {
					qty = formatter.StyleRed.Render(qty)
				}
				rows = append(rows, []string{
					item.SKU,
					item.Name,
					qty,
					strconv.Itoa(item.MinQuantity),
					item.UnitCost.StringFixed(2),
					item.StockValue().StringFixed(2),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"SKU", "NAME", "ON HAND", "MIN", "UNIT COST", "VALUE"}, rows))

			total, err := app.Inventory.TotalStockValue(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("\nTotal stock value: %s\n", total.StringFixed(2))
			return nil
		},
	}
}

func newInventoryAdjustCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adjust <sku> <delta>",
		Short: "Receive (+) or issue (-) stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := app.Inventory.GetBySKU(ctx, args[0])
			if err != nil {
				return err
			}

			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}

			quantity, err := app.Inventory.Adjust(ctx, item.ID, delta)
			var short *domain.InsufficientStockError
			if errors.As(err, &short) {
				return fmt.Errorf("cannot issue %d of %s: only %d on hand",
					short.Requested, item.SKU, short.Available)
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s now at %d on hand\n", item.SKU, quantity)
			if quantity <= item.MinQuantity {
				fmt.Println(formatter.StyleYellow.Render("Stock at or below reorder threshold."))
			}
			return nil
		},
	}
	return cmd
}

func newInventoryLowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "List parts at or below their reorder threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Inventory.ListBelowMin(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("All parts above reorder thresholds.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					item.SKU,
					item.Name,
					formatter.StyleRed.Render(strconv.Itoa(item.QuantityOnHand)),
					strconv.Itoa(item.MinQuantity),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"SKU", "NAME", "ON HAND", "MIN"}, rows))
			return nil
		},
	}
}
