package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Errors returned by the order lifecycle. Controllers map these to
// HTTP statuses: validation 400, not-found 404, state conflicts 409.
var (
	ErrEmptyItems       = errors.New("order must contain at least one item")
	ErrInvalidOrderType = errors.New("invalid order_type")
	ErrTableRequired    = errors.New("table_id is required for dine-in orders")
	ErrTableNotFound    = errors.New("table not found")
	ErrTableOccupied    = errors.New("table is already occupied")
	ErrItemNotFound     = errors.New("item not found")
	ErrUnitNotFound     = errors.New("unit not found for item")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNotActive   = errors.New("order is not active")
	ErrOrderCheckedOut  = errors.New("order already checked out")
	ErrHasDue           = errors.New("order has due amount; require force=true")
)

// Principal is the resolved caller identity, taken from the JWT.
type Principal struct {
	UserID       uint
	RestaurantID uint
	Role         string
}

type OrderItemRequest struct {
	ItemID   uint   `json:"item_id"`
	UnitName string `json:"unit_name"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderType       string             `json:"order_type"`
	TableID         *uint              `json:"table_id"`
	Items           []OrderItemRequest `json:"items"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	VatPercent      decimal.Decimal    `json:"vat_percent"`
	DeliveryCharge  decimal.Decimal    `json:"delivery_charge"`
	PaymentStatus   string             `json:"payment_status"`
	PaymentMethod   string             `json:"payment_method"`
	CashAmount      decimal.Decimal    `json:"cash_amount"`
	OnlineAmount    decimal.Decimal    `json:"online_amount"`
	CustomerName    string             `json:"customer_name"`
	Note            string             `json:"note"`
}

type UpdateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	DiscountPercent *decimal.Decimal   `json:"discount_percent"`
	VatPercent      *decimal.Decimal   `json:"vat_percent"`
	DeliveryCharge  *decimal.Decimal   `json:"delivery_charge"`
	PaymentStatus   *string            `json:"payment_status"`
	PaymentMethod   *string            `json:"payment_method"`
	CustomerName    *string            `json:"customer_name"`
	Note            *string            `json:"note"`
}

type CheckoutRequest struct {
	Force           bool             `json:"force"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	VatPercent      *decimal.Decimal `json:"vat_percent"`
	PaymentMethod   *string          `json:"payment_method"`
}

type BulkCheckoutResult struct {
	OrderID uint   `json:"order_id"`
	OK      bool   `json:"ok"`
	Note    string `json:"note,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OrderService orchestrates the order state machine together with the
// table tracker, inventory ledger, sequencing counter, KOT generator
// and notification fan-out. Stock is decremented at creation time and
// restored on cancellation; Order.StockApplied guards against a second
// application on retried checkouts (see DESIGN.md).
type OrderService struct {
	db        *gorm.DB
	publisher Publisher
	printer   TicketPrinter
	ledger    *InventoryLedger
}

func NewOrderService(db *gorm.DB, publisher Publisher, printer TicketPrinter) *OrderService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &OrderService{
		db:        db,
		publisher: publisher,
		printer:   printer,
		ledger:    NewInventoryLedger(publisher),
	}
}

// Ledger exposes the inventory ledger so the manual stock endpoint
// shares the same mutation path.
func (s *OrderService) Ledger() *InventoryLedger {
	return s.ledger
}

// Create validates the payload, reserves the table (dine-in), issues
// the order number, prices the order, persists it, decrements stock
// and emits a NEW KOT. Writes happen in that order inside one
// transaction; printing and notification run after commit and are
// best effort.
func (s *OrderService) Create(p Principal, req CreateOrderRequest) (*models.Order, error) {
	switch req.OrderType {
	case models.OrderTypeDineIn, models.OrderTypeTakeaway, models.OrderTypeDelivery:
	default:
		return nil, ErrInvalidOrderType
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = models.PaymentDue
	}

	var order *models.Order
	var kot *models.KOT

	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, err := s.resolveItems(tx, p.RestaurantID, req.Items)
		if err != nil {
			return err
		}

		itemsTotal, err := ComputeItemsTotal(items)
		if err != nil {
			return err
		}
		pricing, err := ApplyDiscountAndVat(itemsTotal, req.DiscountPercent, req.VatPercent, req.DeliveryCharge)
		if err != nil {
			return err
		}
		paid, due, err := ApplyPayment(pricing.FinalAmount, req.PaymentStatus, req.CustomerName)
		if err != nil {
			return err
		}

		var table *models.Table
		var areaID *uint
		if req.OrderType == models.OrderTypeDineIn {
			if req.TableID == nil {
				return ErrTableRequired
			}
			table = &models.Table{}
			if err := tx.Where("id = ? AND restaurant_id = ?", *req.TableID, p.RestaurantID).First(table).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTableNotFound
				}
				return err
			}
			// Conditional claim: only available -> occupied succeeds,
			// so two concurrent creates cannot both win the table.
			res := tx.Model(&models.Table{}).
				Where("id = ? AND restaurant_id = ? AND status = ?", table.ID, p.RestaurantID, models.TableAvailable).
				Update("status", models.TableOccupied)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrTableOccupied
			}
			areaID = &table.AreaID
		}

		seq, err := NextOrderNumber(tx, p.RestaurantID)
		if err != nil {
			return err
		}

		order = &models.Order{
			RestaurantID:    p.RestaurantID,
			OrderNo:         seq,
			OrderType:       req.OrderType,
			TableID:         req.TableID,
			AreaID:          areaID,
			Items:           items,
			ItemsTotal:      itemsTotal,
			DiscountPercent: req.DiscountPercent,
			DiscountAmount:  pricing.DiscountAmount,
			VatPercent:      req.VatPercent,
			VatAmount:       pricing.VatAmount,
			DeliveryCharge:  req.DeliveryCharge,
			FinalAmount:     pricing.FinalAmount,
			PaidAmount:      paid,
			DueAmount:       due,
			PaymentStatus:   req.PaymentStatus,
			PaymentMethod:   req.PaymentMethod,
			CashAmount:      req.CashAmount,
			OnlineAmount:    req.OnlineAmount,
			CustomerName:    req.CustomerName,
			Note:            req.Note,
			Status:          models.OrderStatusActive,
			StockApplied:    true,
			CreatedBy:       p.UserID,
		}
		if req.OrderType != models.OrderTypeDineIn {
			order.TableID = nil
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if table != nil {
			if err := tx.Model(&models.Table{}).Where("id = ?", table.ID).
				Update("current_order_id", order.ID).Error; err != nil {
				return err
			}
		}

		if err := s.ledger.Decrement(tx, p.RestaurantID, order.Items); err != nil {
			return err
		}

		if req.OrderType == models.OrderTypeDineIn {
			kot = BuildNewKOT(order, table.Name, p)
			if err := tx.Create(kot).Error; err != nil {
				return fmt.Errorf("create kot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if kot != nil {
		s.printKOT(kot)
		s.publisher.Publish(p.RestaurantID, EventKOTNew, kot)
	}
	s.publisher.Publish(p.RestaurantID, EventOrderCreated, order)
	return order, nil
}

// Update mutates an active order: replaces items (adjusting stock,
// restore before decrement), reapplies pricing and payment, and emits
// an UPDATE KOT only when the item diff is non-empty or the note
// changed.
func (s *OrderService) Update(p Principal, orderID uint, req UpdateOrderRequest) (*models.Order, error) {
	var order models.Order
	var kot *models.KOT

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadActiveOrder(tx, p.RestaurantID, orderID, &order); err != nil {
			return err
		}

		noteChanged := false
		if req.Note != nil && *req.Note != order.Note {
			order.Note = *req.Note
			noteChanged = true
		}
		if req.DiscountPercent != nil {
			order.DiscountPercent = *req.DiscountPercent
		}
		if req.VatPercent != nil {
			order.VatPercent = *req.VatPercent
		}
		if req.DeliveryCharge != nil {
			order.DeliveryCharge = *req.DeliveryCharge
		}
		if req.PaymentStatus != nil {
			order.PaymentStatus = *req.PaymentStatus
		}
		if req.PaymentMethod != nil {
			order.PaymentMethod = *req.PaymentMethod
		}
		if req.CustomerName != nil {
			order.CustomerName = *req.CustomerName
		}

		var delta ItemDelta
		if req.Items != nil {
			newItems, err := s.resolveItems(tx, p.RestaurantID, req.Items)
			if err != nil {
				return err
			}
			delta = DiffItems(order.Items, newItems)

			if !delta.Empty() {
				// Restore before decrement so the zero clamp never
				// fires on quantity that is about to come back.
				if order.StockApplied {
					if err := s.ledger.Restore(tx, p.RestaurantID, order.Items); err != nil {
						return err
					}
				}
				if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
					return err
				}
				for i := range newItems {
					newItems[i].OrderID = order.ID
				}
				if err := tx.Create(&newItems).Error; err != nil {
					return err
				}
				if order.StockApplied {
					if err := s.ledger.Decrement(tx, p.RestaurantID, newItems); err != nil {
						return err
					}
				}
				order.Items = newItems
			}
		}

		itemsTotal, err := ComputeItemsTotal(order.Items)
		if err != nil {
			return err
		}
		pricing, err := ApplyDiscountAndVat(itemsTotal, order.DiscountPercent, order.VatPercent, order.DeliveryCharge)
		if err != nil {
			return err
		}
		paid, due, err := ApplyPayment(pricing.FinalAmount, order.PaymentStatus, order.CustomerName)
		if err != nil {
			return err
		}

		order.ItemsTotal = itemsTotal
		order.DiscountAmount = pricing.DiscountAmount
		order.VatAmount = pricing.VatAmount
		order.FinalAmount = pricing.FinalAmount
		order.PaidAmount = paid
		order.DueAmount = due

		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return err
		}

		if order.OrderType == models.OrderTypeDineIn && (!delta.Empty() || noteChanged) {
			kot = BuildUpdateKOT(&order, s.tableName(tx, order.TableID), delta, p)
			if err := tx.Create(kot).Error; err != nil {
				return fmt.Errorf("create kot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if kot != nil {
		s.printKOT(kot)
		s.publisher.Publish(p.RestaurantID, EventKOTUpdate, kot)
	}
	s.publisher.Publish(p.RestaurantID, EventOrderUpdated, &order)
	return &order, nil
}

// Cancel terminates an active order: records the reason, restores any
// applied stock, frees the table and emits a VOID KOT for dine-in.
func (s *OrderService) Cancel(p Principal, orderID uint, reason string) (*models.Order, error) {
	var order models.Order
	var kot *models.KOT

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadActiveOrder(tx, p.RestaurantID, orderID, &order); err != nil {
			return err
		}

		order.Status = models.OrderStatusCancelled
		order.CancelReason = reason

		if order.StockApplied {
			if err := s.ledger.Restore(tx, p.RestaurantID, order.Items); err != nil {
				return err
			}
			order.StockApplied = false
		}

		if order.TableID != nil {
			if err := freeTable(tx, *order.TableID); err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return err
		}

		if order.OrderType == models.OrderTypeDineIn {
			kot = BuildVoidKOT(&order, s.tableName(tx, order.TableID), p)
			if err := tx.Create(kot).Error; err != nil {
				return fmt.Errorf("create kot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if kot != nil {
		s.printKOT(kot)
		s.publisher.Publish(p.RestaurantID, EventKOTVoid, kot)
	}
	s.publisher.Publish(p.RestaurantID, EventOrderCancelled, &order)
	return &order, nil
}

// Checkout finalizes an active order: recomputes pricing from the
// given percentages, rejects outstanding dues unless forced, settles
// payment, frees the table and writes the receipt. A checked-out order
// is terminal; retrying returns ErrOrderCheckedOut.
func (s *OrderService) Checkout(p Principal, orderID uint, req CheckoutRequest) (*models.Order, error) {
	var order models.Order
	var receipt *models.Receipt

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadActiveOrder(tx, p.RestaurantID, orderID, &order); err != nil {
			return err
		}

		if req.DiscountPercent != nil {
			order.DiscountPercent = *req.DiscountPercent
		}
		if req.VatPercent != nil {
			order.VatPercent = *req.VatPercent
		}
		if req.PaymentMethod != nil {
			order.PaymentMethod = *req.PaymentMethod
		}

		itemsTotal, err := ComputeItemsTotal(order.Items)
		if err != nil {
			return err
		}
		pricing, err := ApplyDiscountAndVat(itemsTotal, order.DiscountPercent, order.VatPercent, order.DeliveryCharge)
		if err != nil {
			return err
		}
		order.ItemsTotal = itemsTotal
		order.DiscountAmount = pricing.DiscountAmount
		order.VatAmount = pricing.VatAmount
		order.FinalAmount = pricing.FinalAmount

		if pricing.FinalAmount.GreaterThan(order.PaidAmount) && !req.Force {
			return ErrHasDue
		}

		paid, due := SettleDue(pricing.FinalAmount, order.PaidAmount, req.Force)
		order.PaidAmount = paid
		order.DueAmount = due
		if due.IsZero() {
			order.PaymentStatus = models.PaymentPaid
		}

		if !order.StockApplied {
			if err := s.ledger.Decrement(tx, p.RestaurantID, order.Items); err != nil {
				return err
			}
			order.StockApplied = true
		}

		if order.TableID != nil {
			if err := freeTable(tx, *order.TableID); err != nil {
				return err
			}
		}

		now := time.Now()
		order.Status = models.OrderStatusCheckedOut
		order.CheckedOut = true
		order.CheckedOutAt = &now

		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return err
		}

		receipt = buildReceipt(&order)
		if err := tx.Create(receipt).Error; err != nil {
			return fmt.Errorf("create receipt: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if receipt != nil && s.printer != nil {
		if err := s.printer.PrintReceipt(receipt); err != nil {
			utils.ErrorLogger.Printf("print receipt %s: %v", receipt.ReceiptNumber, err)
		}
	}
	s.publisher.Publish(p.RestaurantID, EventOrderCheckedOut, &order)
	return &order, nil
}

// BulkCheckout applies Checkout to each id independently. A failing id
// never aborts the others, and an already-checked-out order counts as
// success so retries are idempotent.
func (s *OrderService) BulkCheckout(p Principal, ids []uint, req CheckoutRequest) []BulkCheckoutResult {
	results := make([]BulkCheckoutResult, 0, len(ids))
	for _, id := range ids {
		_, err := s.Checkout(p, id, req)
		switch {
		case err == nil:
			results = append(results, BulkCheckoutResult{OrderID: id, OK: true})
		case errors.Is(err, ErrOrderCheckedOut):
			results = append(results, BulkCheckoutResult{OrderID: id, OK: true, Note: "already checked out"})
		default:
			results = append(results, BulkCheckoutResult{OrderID: id, OK: false, Error: err.Error()})
		}
	}
	return results
}

// Delete removes an order outright. An active order is unwound first:
// stock restored, table freed.
func (s *OrderService) Delete(p Principal, orderID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").
			Where("id = ? AND restaurant_id = ?", orderID, p.RestaurantID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.IsActive() {
			if order.StockApplied {
				if err := s.ledger.Restore(tx, p.RestaurantID, order.Items); err != nil {
					return err
				}
			}
			if order.TableID != nil {
				if err := freeTable(tx, *order.TableID); err != nil {
					return err
				}
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(p.RestaurantID, EventOrderDeleted, map[string]uint{"order_id": orderID})
	return nil
}

// --- helpers ---

// loadActiveOrder loads a restaurant-scoped order with its items and
// rejects terminal states.
func (s *OrderService) loadActiveOrder(tx *gorm.DB, restaurantID, orderID uint, order *models.Order) error {
	if err := tx.Preload("Items").
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	switch order.Status {
	case models.OrderStatusActive:
		return nil
	case models.OrderStatusCheckedOut:
		return ErrOrderCheckedOut
	default:
		return ErrOrderNotActive
	}
}

// resolveItems validates each requested line against the catalog and
// builds order items with the server-side unit price.
func (s *OrderService) resolveItems(tx *gorm.DB, restaurantID uint, reqs []OrderItemRequest) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(reqs))
	for i, r := range reqs {
		if r.Quantity < 1 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		if strings.TrimSpace(r.UnitName) == "" {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrUnitNotFound)
		}

		var item models.Item
		if err := tx.Preload("Units").
			Where("id = ? AND restaurant_id = ?", r.ItemID, restaurantID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrItemNotFound)
			}
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}

		var unit *models.ItemUnit
		for j := range item.Units {
			if item.Units[j].UnitName == r.UnitName {
				unit = &item.Units[j]
				break
			}
		}
		if unit == nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrUnitNotFound)
		}

		items = append(items, models.OrderItem{
			ItemID:   item.ID,
			ItemName: item.Name,
			UnitName: unit.UnitName,
			Price:    unit.Price,
			Quantity: r.Quantity,
		})
	}
	return items, nil
}

func (s *OrderService) tableName(tx *gorm.DB, tableID *uint) string {
	if tableID == nil {
		return ""
	}
	var table models.Table
	if err := tx.Select("name").First(&table, *tableID).Error; err != nil {
		return ""
	}
	return table.Name
}

func (s *OrderService) printKOT(kot *models.KOT) {
	if s.printer == nil {
		return
	}
	if err := s.printer.PrintKOT(kot); err != nil {
		utils.ErrorLogger.Printf("print kot %d: %v", kot.ID, err)
	}
}

func freeTable(tx *gorm.DB, tableID uint) error {
	return tx.Model(&models.Table{}).Where("id = ?", tableID).
		Updates(map[string]interface{}{
			"status":           models.TableAvailable,
			"current_order_id": nil,
		}).Error
}

func buildReceipt(order *models.Order) *models.Receipt {
	receipt := &models.Receipt{
		RestaurantID:   order.RestaurantID,
		OrderID:        order.ID,
		ReceiptNumber:  fmt.Sprintf("RCP-%d-%s", order.OrderNo, uuid.NewString()[:8]),
		ItemsTotal:     order.ItemsTotal,
		DiscountAmount: order.DiscountAmount,
		VatAmount:      order.VatAmount,
		DeliveryCharge: order.DeliveryCharge,
		Total:          order.FinalAmount,
		PaidAmount:     order.PaidAmount,
		DueAmount:      order.DueAmount,
		PaymentStatus:  order.PaymentStatus,
		PaymentMethod:  order.PaymentMethod,
		CustomerName:   order.CustomerName,
	}
	for _, it := range order.Items {
		receipt.Items = append(receipt.Items, models.ReceiptItem{
			ItemName:  it.ItemName,
			UnitName:  it.UnitName,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
		})
	}
	return receipt
}
