package cli

import (
	"github.com/alexanderramin/mainstay/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Equipment  service.EquipmentService
	Inventory  service.InventoryService
	WorkOrders service.WorkOrderService
}

// NewRootCmd creates the top-level "mainstay" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mainstay",
		Short: "Maintenance operations tracker",
	}

	root.AddCommand(
		newEquipmentCmd(app),
		newInventoryCmd(app),
		newWorkOrderCmd(app),
	)

	return root
}
