package models

import "time"

type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// StatusSequence is the forward path an order normally walks. Cancelled is
// reachable only by a direct admin update.
var StatusSequence = []OrderStatus{StatusReceived, StatusPreparing, StatusReady, StatusDelivered}

// ActiveStatuses are the statuses counted towards the queue.
var ActiveStatuses = []OrderStatus{StatusReceived, StatusPreparing}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusReceived, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsActive() bool {
	return s == StatusReceived || s == StatusPreparing
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// NextStatus returns the step after s in StatusSequence. ok is false for the
// last step, for cancelled orders and for unknown values.
func NextStatus(s OrderStatus) (next OrderStatus, ok bool) {
	for i, step := range StatusSequence {
		if step == s && i < len(StatusSequence)-1 {
			return StatusSequence[i+1], true
		}
	}
	return "", false
}

type DeliveryMode string

const (
	DeliveryPickup   DeliveryMode = "pickup"
	DeliveryDelivery DeliveryMode = "delivery"
)

func (m DeliveryMode) IsValid() bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

// Order is append-only: after creation only Status and UpdatedAt change.
// QueuePosition is the snapshot taken at creation and is never recomputed.
type Order struct {
	ID              string       `json:"id" gorm:"primaryKey;type:varchar(20)"`
	UserID          *string      `json:"userId" gorm:"type:varchar(36);index:idx_orders_user_id"`
	User            *User        `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CustomerName    string       `json:"customerName" gorm:"size:255;not null"`
	Status          OrderStatus  `json:"status" gorm:"size:20;not null;default:received;index:idx_orders_status"`
	Total           float64      `json:"total" gorm:"type:decimal(10,2);not null"`
	DeliveryMode    DeliveryMode `json:"deliveryMode" gorm:"size:20;not null;default:pickup"`
	DeliveryAddress *string      `json:"deliveryAddress"`
	DeliveryFee     float64      `json:"deliveryFee" gorm:"type:decimal(10,2);not null;default:0"`
	PaymentMethod   *string      `json:"paymentMethod" gorm:"size:50"`
	MachineNeeded   bool         `json:"machineNeeded" gorm:"not null;default:false"`
	QueuePosition   int          `json:"queuePosition"`
	Observation     *string      `json:"observation" gorm:"type:text"`
	CreatedAt       time.Time    `json:"createdAt" gorm:"index:idx_orders_created_at"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	Items           []OrderItem  `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem keeps a name/price snapshot so later catalogue edits never
// change historical orders. ProductID is nil for free-form items.
type OrderItem struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	OrderID           string  `json:"orderId" gorm:"type:varchar(20);not null;index:idx_order_items_order_id"`
	ProductID         *uint   `json:"productId"`
	ProductName       string  `json:"name" gorm:"size:255;not null"`
	Quantity          int     `json:"quantity" gorm:"not null"`
	UnitPrice         float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	CustomDescription *string `json:"customDescription" gorm:"type:text"`
}

// ItemCount sums the quantities of all items.
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// ItemsTotal is the sum of unit price times quantity, without fees.
func (o *Order) ItemsTotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

type OrderItemInput struct {
	ProductID         *uint   `json:"product_id"`
	ProductName       string  `json:"product_name"`
	Quantity          int     `json:"quantity" binding:"gt=0"`
	UnitPrice         float64 `json:"unit_price" binding:"gte=0"`
	CustomDescription *string `json:"custom_description"`
}

// CreateOrderInput is the checkout payload. Total is trusted as sent.
type CreateOrderInput struct {
	CustomerName    string           `json:"customer_name"`
	Items           []OrderItemInput `json:"items" binding:"dive"`
	Total           float64          `json:"total"`
	DeliveryMode    DeliveryMode     `json:"delivery_mode"`
	DeliveryAddress *string          `json:"delivery_address"`
	DeliveryFee     float64          `json:"delivery_fee"`
	PaymentMethod   *string          `json:"payment_method"`
	MachineNeeded   bool             `json:"machine_needed"`
	Observation     *string          `json:"observation"`
}

type OrderFilter struct {
	UserID *string
	Status OrderStatus
	Limit  int
	Offset int
}

// QueueEntry is the anonymised view of an active order.
type QueueEntry struct {
	ID        string      `json:"id"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type StatusUpdate struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type FinancialStats struct {
	Daily       float64 `json:"daily"`
	Weekly      float64 `json:"weekly"`
	Monthly     float64 `json:"monthly"`
	TotalOrders int64   `json:"totalOrders"`
}
