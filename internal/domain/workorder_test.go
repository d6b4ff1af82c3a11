package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newPendingOrder() *WorkOrder {
	return &WorkOrder{
		ID:        "wo-1",
		Title:     "Replace filter",
		Status:    WorkOrderPending,
		Priority:  PriorityMedium,
		CreatedAt: testNow.AddDate(0, 0, -1),
		UpdatedAt: testNow.AddDate(0, 0, -1),
	}
}

func TestWorkOrder_Start(t *testing.T) {
	w := newPendingOrder()

	require.NoError(t, w.Start(testNow))
	assert.Equal(t, WorkOrderInProgress, w.Status)
	assert.Equal(t, testNow, w.UpdatedAt)

	err := w.Start(testNow)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, WorkOrderInProgress, invalid.From)
	assert.Equal(t, WorkOrderInProgress, invalid.To)
}

func TestWorkOrder_Complete_FromPending(t *testing.T) {
	w := newPendingOrder()

	require.NoError(t, w.Complete(testNow))
	assert.Equal(t, WorkOrderCompleted, w.Status)
	require.NotNil(t, w.CompletedAt)
	assert.Equal(t, testNow, *w.CompletedAt)
}

func TestWorkOrder_Complete_FromInProgress(t *testing.T) {
	w := newPendingOrder()
	require.NoError(t, w.Start(testNow))

	later := testNow.Add(2 * time.Hour)
	require.NoError(t, w.Complete(later))
	assert.Equal(t, WorkOrderCompleted, w.Status)
	require.NotNil(t, w.CompletedAt)
	assert.Equal(t, later, *w.CompletedAt)
}

func TestWorkOrder_Cancel(t *testing.T) {
	w := newPendingOrder()
	require.NoError(t, w.Cancel(testNow))
	assert.Equal(t, WorkOrderCancelled, w.Status)
	assert.Nil(t, w.CompletedAt)

	w = newPendingOrder()
	require.NoError(t, w.Start(testNow))
	require.NoError(t, w.Cancel(testNow))
	assert.Equal(t, WorkOrderCancelled, w.Status)
}

func TestWorkOrder_TerminalStatesRejectAllTransitions(t *testing.T) {
	targets := []WorkOrderStatus{WorkOrderInProgress, WorkOrderCompleted, WorkOrderCancelled}

	for _, terminal := range []WorkOrderStatus{WorkOrderCompleted, WorkOrderCancelled} {
		for _, to := range targets {
			t.Run(string(terminal)+"_to_"+string(to), func(t *testing.T) {
				w := newPendingOrder()
				w.Status = terminal

				err := w.Transition(to, testNow)
				var invalid *InvalidTransitionError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, terminal, w.Status, "terminal state must not change")
			})
		}
	}
}

func TestWorkOrder_CompletedAtSetOnce(t *testing.T) {
	w := newPendingOrder()
	require.NoError(t, w.Complete(testNow))
	first := *w.CompletedAt

	// A second completion attempt fails and must not touch the stamp.
	err := w.Complete(testNow.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, first, *w.CompletedAt)
}

func TestWorkOrder_IsTerminal(t *testing.T) {
	w := newPendingOrder()
	assert.False(t, w.IsTerminal())

	w.Status = WorkOrderInProgress
	assert.False(t, w.IsTerminal())

	w.Status = WorkOrderCompleted
	assert.True(t, w.IsTerminal())

	w.Status = WorkOrderCancelled
	assert.True(t, w.IsTerminal())
}

func TestWorkOrder_Transition_UnknownTarget(t *testing.T) {
	w := newPendingOrder()
	err := w.Transition(WorkOrderStatus("archived"), testNow)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, WorkOrderPending, w.Status)
}

func TestWorkOrder_Transition_PendingCannotBeTarget(t *testing.T) {
	w := newPendingOrder()
	require.NoError(t, w.Start(testNow))

	err := w.Transition(WorkOrderPending, testNow)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, WorkOrderInProgress, w.Status)
}

func TestWorkOrder_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*WorkOrder)
		field   string
		wantErr bool
	}{
		{name: "valid", mutate: func(w *WorkOrder) {}},
		{name: "missing title", mutate: func(w *WorkOrder) { w.Title = "  " }, field: "title", wantErr: true},
		{name: "bad status", mutate: func(w *WorkOrder) { w.Status = "done" }, field: "status", wantErr: true},
		{name: "bad priority", mutate: func(w *WorkOrder) { w.Priority = "urgent" }, field: "priority", wantErr: true},
		{
			name:    "part without inventory ID",
			mutate:  func(w *WorkOrder) { w.Parts = []PartLine{{QuantityRequested: 1}} },
			field:   "parts.inventoryId",
			wantErr: true,
		},
		{
			name:    "part with zero quantity",
			mutate:  func(w *WorkOrder) { w.Parts = []PartLine{{InventoryID: "inv-1"}} },
			field:   "parts.quantityRequested",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newPendingOrder()
			tc.mutate(w)

			err := w.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSortForDisplay(t *testing.T) {
	orders := []*WorkOrder{
		{ID: "old-medium", Priority: PriorityMedium, CreatedAt: testNow.AddDate(0, 0, -5)},
		{ID: "new-medium", Priority: PriorityMedium, CreatedAt: testNow},
		{ID: "critical", Priority: PriorityCritical, CreatedAt: testNow.AddDate(0, 0, -10)},
		{ID: "low", Priority: PriorityLow, CreatedAt: testNow},
		{ID: "high", Priority: PriorityHigh, CreatedAt: testNow.AddDate(0, 0, -2)},
	}

	SortForDisplay(orders)

	ids := make([]string, 0, len(orders))
	for _, w := range orders {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"critical", "high", "new-medium", "old-medium", "low"}, ids)
}

func TestSortForDisplay_UnknownPriorityLast(t *testing.T) {
	orders := []*WorkOrder{
		{ID: "unknown", Priority: "whenever", CreatedAt: testNow},
		{ID: "low", Priority: PriorityLow, CreatedAt: testNow.AddDate(0, 0, -30)},
	}

	SortForDisplay(orders)
	assert.Equal(t, "low", orders[0].ID)
}
