package domain

type EquipmentStatus string

const (
	EquipmentOperational    EquipmentStatus = "operational"
	EquipmentMaintenance    EquipmentStatus = "maintenance"
	EquipmentOutOfService   EquipmentStatus = "out_of_service"
	EquipmentDecommissioned EquipmentStatus = "decommissioned"
)

// ValidEquipmentStatuses is the canonical set of accepted equipment statuses.
var ValidEquipmentStatuses = map[EquipmentStatus]bool{
	EquipmentOperational:    true,
	EquipmentMaintenance:    true,
	EquipmentOutOfService:   true,
	EquipmentDecommissioned: true,
}

type IntervalUnit string

const (
	UnitDays   IntervalUnit = "days"
	UnitMonths IntervalUnit = "months"
	UnitHours  IntervalUnit = "hours"
)

// ValidIntervalUnits is the canonical set of accepted maintenance interval units.
var ValidIntervalUnits = map[IntervalUnit]bool{
	UnitDays:   true,
	UnitMonths: true,
	UnitHours:  true,
}

type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

// ValidWorkOrderStatuses is the canonical set of accepted work order statuses.
var ValidWorkOrderStatuses = map[WorkOrderStatus]bool{
	WorkOrderPending:    true,
	WorkOrderInProgress: true,
	WorkOrderCompleted:  true,
	WorkOrderCancelled:  true,
}

type WorkOrderPriority string

const (
	PriorityLow      WorkOrderPriority = "low"
	PriorityMedium   WorkOrderPriority = "medium"
	PriorityHigh     WorkOrderPriority = "high"
	PriorityCritical WorkOrderPriority = "critical"
)

// ValidWorkOrderPriorities is the canonical set of accepted work order priorities.
var ValidWorkOrderPriorities = map[WorkOrderPriority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// PriorityRank returns a sort rank for display ordering (lower = listed first).
func PriorityRank(p WorkOrderPriority) int {
	switch p {
	case PriorityCritical:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	default:
		return 5
	}
}
