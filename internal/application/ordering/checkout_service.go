package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/application/notification"
	"github.com/pyasti/backend/internal/domain/catalog"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CheckoutService turns a buyer's cart into one persisted order per
// seller. Stock is committed only after every order intent validates;
// a partial failure compensates already-applied stock decrements and
// cancels already-persisted orders.
type CheckoutService struct {
	productRepo     catalog.ProductRepository
	orderRepo       ordering.OrderRepository
	userRepo        identity.UserRepository
	notifier        notification.Notifier
	eventPublisher  shared.EventPublisher
	deliveryOptions []ordering.DeliveryOption
	shippingPolicy  ordering.ShippingPolicy
	taxPolicy       ordering.TaxPolicy
	adminEmail      string
	logger          *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	productRepo catalog.ProductRepository,
	orderRepo ordering.OrderRepository,
	userRepo identity.UserRepository,
	notifier notification.Notifier,
	adminEmail string,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		deliveryOptions: ordering.DefaultDeliveryOptions(),
		shippingPolicy:  ordering.PerSellerShippingPolicy{},
		taxPolicy:       ordering.ZeroTaxPolicy{},
		adminEmail:      adminEmail,
		logger:          logger.Named("checkout"),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetDeliveryOptions overrides the configured delivery tiers
func (s *CheckoutService) SetDeliveryOptions(options []ordering.DeliveryOption) {
	s.deliveryOptions = options
}

// SetTaxPolicy overrides the tax policy
func (s *CheckoutService) SetTaxPolicy(policy ordering.TaxPolicy) {
	if policy != nil {
		s.taxPolicy = policy
	}
}

// stockAdjustment records one applied stock decrement so it can be
// compensated on failure
type stockAdjustment struct {
	productID uuid.UUID
	quantity  int
}

// CreateOrder runs the checkout pipeline for one buyer cart
func (s *CheckoutService) CreateOrder(ctx context.Context, buyerID uuid.UUID, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if buyerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	cart, err := req.ToCart()
	if err != nil {
		return nil, err
	}
	if err := cart.Validate(); err != nil {
		return nil, err
	}

	buyer, err := s.userRepo.FindByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrichItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	// Build every order intent before touching stock
	partitions := ordering.PartitionBySeller(enriched)
	orders := make([]*ordering.Order, 0, len(partitions))
	for _, partition := range partitions {
		quote, err := s.shippingPolicy.QuotePartition(partition, cart.ShippingAddress, cart.DeliveryOptionIndex, s.deliveryOptions, s.taxPolicy)
		if err != nil {
			return nil, err
		}

		order, err := ordering.NewOrder(buyerID, partition.SellerID, partition.Items, derefAddress(cart.ShippingAddress), cart.PaymentMethod, quote)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	applied, err := s.commitStock(ctx, orders)
	if err != nil {
		s.rollbackStock(ctx, applied)
		return nil, err
	}

	persisted := make([]*ordering.Order, 0, len(orders))
	for _, order := range orders {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			s.logger.Error("failed to persist seller order, compensating checkout",
				zap.String("order_id", order.ID.String()),
				zap.String("seller_id", order.SellerID.String()),
				zap.Error(err))
			s.compensate(ctx, persisted)
			s.rollbackStock(ctx, applied)
			return nil, err
		}
		persisted = append(persisted, order)
	}

	s.publishEvents(ctx, persisted)
	s.notifyCheckout(ctx, buyer, persisted)

	response := &CreateOrderResponse{
		PrimaryOrderID: persisted[0].ID.String(),
	}
	for _, order := range persisted {
		response.OrderIDs = append(response.OrderIDs, order.ID.String())
	}
	return response, nil
}

// enrichItems snapshots product data into the cart items and validates
// availability. The first missing product or stock shortage aborts the
// whole checkout.
func (s *CheckoutService) enrichItems(ctx context.Context, items []ordering.CartItem) ([]ordering.CartItem, error) {
	enriched := make([]ordering.CartItem, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.HasStock(item.Quantity) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for "+product.Name)
		}

		item.Name = product.Name
		item.Slug = product.Slug
		item.Image = product.PrimaryImage()
		item.Brand = product.Brand
		item.PartNumber = product.PartNumber
		item.SubCategoryID = product.SubCategoryID
		item.Price = product.EffectivePrice()
		item.SellerID = product.SellerID
		item.VehicleCompatibility = product.VehicleCompatibility
		item.Specifications = product.Specifications
		enriched = append(enriched, item)
	}
	return enriched, nil
}

// commitStock decrements stock and increments the sales counter for
// every item across all orders. Returns the adjustments applied so far
// when one fails, so the caller can compensate.
func (s *CheckoutService) commitStock(ctx context.Context, orders []*ordering.Order) ([]stockAdjustment, error) {
	applied := make([]stockAdjustment, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity, item.Quantity); err != nil {
				return applied, err
			}
			applied = append(applied, stockAdjustment{productID: item.ProductID, quantity: item.Quantity})
		}
	}
	return applied, nil
}

// rollbackStock restores previously applied stock decrements
func (s *CheckoutService) rollbackStock(ctx context.Context, applied []stockAdjustment) {
	for _, adj := range applied {
		if err := s.productRepo.AdjustStock(ctx, adj.productID, adj.quantity, -adj.quantity); err != nil {
			s.logger.Error("failed to restore stock during compensation",
				zap.String("product_id", adj.productID.String()),
				zap.Int("quantity", adj.quantity),
				zap.Error(err))
		}
	}
}

// compensate marks already-persisted orders cancelled after a partial
// checkout failure
func (s *CheckoutService) compensate(ctx context.Context, persisted []*ordering.Order) {
	for _, order := range persisted {
		if err := order.Cancel(); err != nil {
			continue
		}
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			s.logger.Error("failed to cancel order during compensation",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
	}
}

// publishEvents publishes and clears each order's buffered domain events
func (s *CheckoutService) publishEvents(ctx context.Context, orders []*ordering.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, order := range orders {
		events := order.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish order events",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
		order.ClearDomainEvents()
	}
}

// notifyCheckout fans out purchase receipts: the buyer and the admin
// get the primary order, each seller gets their own order. Failures are
// logged, never surfaced.
func (s *CheckoutService) notifyCheckout(ctx context.Context, buyer *identity.User, orders []*ordering.Order) {
	if s.notifier == nil || len(orders) == 0 {
		return
	}

	primary := orders[0]
	buyerRecipients := []notification.Recipient{{
		Name:     buyer.Name,
		Email:    buyer.Email,
		Language: buyer.Language,
	}}
	if s.adminEmail != "" {
		buyerRecipients = append(buyerRecipients, notification.Recipient{
			Name:     "Admin",
			Email:    s.adminEmail,
			Language: identity.DefaultLanguage,
		})
	}
	if err := s.notifier.Notify(ctx, primary, buyerRecipients, notification.KindPurchaseReceipt); err != nil {
		s.logger.Warn("buyer notification failed", zap.Error(err))
	}

	for _, order := range orders {
		seller, err := s.userRepo.FindByID(ctx, order.SellerID)
		if err != nil {
			s.logger.Warn("cannot notify unknown seller",
				zap.String("seller_id", order.SellerID.String()),
				zap.Error(err))
			continue
		}
		recipients := []notification.Recipient{{
			Name:     seller.Name,
			Email:    seller.Email,
			Language: seller.Language,
		}}
		if err := s.notifier.Notify(ctx, order, recipients, notification.KindPurchaseReceipt); err != nil {
			s.logger.Warn("seller notification failed",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
	}
}

// derefAddress converts an optional address into its value form
func derefAddress(addr *valueobject.Address) valueobject.Address {
	if addr == nil {
		return valueobject.EmptyAddress()
	}
	return *addr
}
