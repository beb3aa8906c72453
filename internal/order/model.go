package order

import "time"

// Order statuses.
const (
	OrderPending = "PENDING"
	OrderServed  = "SERVED"
	OrderPayed   = "PAYED"
)

// Step-menu statuses, in workflow order.
const (
	StatusPending = "PENDING"
	StatusInPrep  = "IN_PREP"
	StatusReady   = "READY"
	StatusServed  = "SERVED"
)

// Service types. PREP dishes pass through the kitchen queue, DIRECT ones
// (drinks, pre-made items) go straight to the table.
const (
	ServicePrep   = "PREP"
	ServiceDirect = "DIRECT"
)

type Order struct {
	ID        string    `json:"id"`
	TableID   *string   `json:"table_id"`
	TableName string    `json:"table_name,omitempty"`
	Status    string    `json:"status"`
	Steps     []Step    `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Step struct {
	ID       string     `json:"id"`
	OrderID  string     `json:"order_id"`
	Position int        `json:"position"`
	Status   string     `json:"status"`
	Menus    []StepMenu `json:"menus"`
}

type StepMenu struct {
	ID          string     `json:"id"`
	StepID      string     `json:"step_id"`
	MenuID      string     `json:"menu_id"`
	MenuName    string     `json:"menu_name"`
	Quantity    int        `json:"quantity"`
	ServiceType string     `json:"service_type"`
	Status      string     `json:"status"`
	ServedAt    *time.Time `json:"served_at"`
}

// QueueCard is one kitchen-display entry: a PREP step menu currently being
// worked on or waiting for pickup.
type QueueCard struct {
	StepMenu  StepMenu  `json:"step_menu"`
	OrderID   string    `json:"order_id"`
	TableName string    `json:"table_name"`
	CreatedAt time.Time `json:"created_at"`
}

type QueueSummary struct {
	Cards            []QueueCard `json:"cards"`
	InPrep           int         `json:"in_prep"`
	Ready            int         `json:"ready"`
	AwaitingServices int         `json:"awaiting_services"`
}
