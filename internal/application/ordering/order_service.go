package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/application/notification"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderViewCache caches rendered order views. Get returns nil without
// error on a miss; lifecycle transitions invalidate the entry.
type OrderViewCache interface {
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	Set(ctx context.Context, dto *OrderDTO) error
	Invalidate(ctx context.Context, orderID uuid.UUID) error
}

// OrderService handles order lifecycle and queries
type OrderService struct {
	orderRepo      ordering.OrderRepository
	userRepo       identity.UserRepository
	gateway        PaymentGateway
	notifier       notification.Notifier
	eventPublisher shared.EventPublisher
	viewCache      OrderViewCache
	adminEmail     string
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	userRepo identity.UserRepository,
	gateway PaymentGateway,
	notifier notification.Notifier,
	adminEmail string,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		gateway:    gateway,
		notifier:   notifier,
		adminEmail: adminEmail,
		logger:     logger.Named("orders"),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetViewCache sets the order-view cache invalidated on transitions
func (s *OrderService) SetViewCache(cache OrderViewCache) {
	s.viewCache = cache
}

// GetByID returns one order, visible to its buyer, its seller, or an admin
func (s *OrderService) GetByID(ctx context.Context, requesterID uuid.UUID, role identity.Role, orderID uuid.UUID) (*OrderDTO, error) {
	if cached := s.cachedView(ctx, orderID); cached != nil {
		if err := authorizeView(cached, requesterID, role); err != nil {
			return nil, err
		}
		return cached, nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	dto := ToOrderDTO(order)
	if err := authorizeView(&dto, requesterID, role); err != nil {
		return nil, err
	}
	s.cacheView(ctx, &dto)
	return &dto, nil
}

// authorizeView restricts an order view to its buyer, its seller, or an admin
func authorizeView(dto *OrderDTO, requesterID uuid.UUID, role identity.Role) error {
	if role == identity.RoleAdmin {
		return nil
	}
	requester := requesterID.String()
	if dto.BuyerID != requester && dto.SellerID != requester {
		return shared.ErrForbidden
	}
	return nil
}

func (s *OrderService) cachedView(ctx context.Context, orderID uuid.UUID) *OrderDTO {
	if s.viewCache == nil {
		return nil
	}
	dto, err := s.viewCache.Get(ctx, orderID)
	if err != nil {
		s.logger.Warn("order view cache lookup failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return nil
	}
	return dto
}

func (s *OrderService) cacheView(ctx context.Context, dto *OrderDTO) {
	if s.viewCache == nil {
		return
	}
	if err := s.viewCache.Set(ctx, dto); err != nil {
		s.logger.Warn("failed to cache order view",
			zap.String("order_id", dto.ID),
			zap.Error(err))
	}
}

// ListMine lists the requesting buyer's orders
func (s *OrderService) ListMine(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]OrderDTO, error) {
	if buyerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	orders, err := s.orderRepo.FindByBuyer(ctx, buyerID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderDTOs(orders), nil
}

// ListForSeller lists a seller's orders. Requires the seller role.
func (s *OrderService) ListForSeller(ctx context.Context, sellerID uuid.UUID, role identity.Role, filter shared.Filter) ([]OrderDTO, error) {
	if sellerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if role != identity.RoleSeller && role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}
	orders, err := s.orderRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderDTOs(orders), nil
}

// ListAll lists every order. Admin only.
func (s *OrderService) ListAll(ctx context.Context, role identity.Role, filter shared.Filter) ([]OrderDTO, error) {
	if role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderDTOs(orders), nil
}

// CreatePayment registers a payment intent with the gateway and stores
// its reference on the order
func (s *OrderService) CreatePayment(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.IsPaid {
		return "", shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, order.TotalPrice)
	if err != nil {
		return "", shared.ErrExternalService
	}

	if err := order.AttachPaymentIntent(ordering.PaymentResult{ID: gatewayOrder.ID, Status: gatewayOrder.Status}); err != nil {
		return "", err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return "", err
	}
	s.invalidateView(ctx, order.ID)
	return gatewayOrder.ID, nil
}

// ApprovePayment captures the gateway order and marks the order paid.
// The capture must return the stored gateway reference with a COMPLETED
// status; anything else fails without mutating the order.
func (s *OrderService) ApprovePayment(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentResult == nil || order.PaymentResult.ID == "" {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has no pending payment")
	}

	capture, err := s.gateway.Capture(ctx, order.PaymentResult.ID)
	if err != nil {
		return nil, shared.ErrExternalService
	}
	if capture.ID != order.PaymentResult.ID || capture.Status != CaptureStatusCompleted {
		return nil, shared.NewDomainError("EXTERNAL_SERVICE", "Payment capture was not completed")
	}

	return s.markPaid(ctx, order, ordering.PaymentResult{
		ID:           capture.ID,
		Status:       capture.Status,
		EmailAddress: capture.EmailAddress,
	})
}

// MarkPaid records a payment made outside the gateway flow (admin action)
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID, result ordering.PaymentResult) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, order, result)
}

func (s *OrderService) markPaid(ctx context.Context, order *ordering.Order, result ordering.PaymentResult) (*OrderDTO, error) {
	if err := order.MarkPaid(result); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, order)
	s.notify(ctx, order, notification.KindPurchaseReceipt, true, false)

	dto := ToOrderDTO(order)
	return &dto, nil
}

// MarkDelivered records delivery, completing the order
func (s *OrderService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkDelivered(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, order)
	s.notify(ctx, order, notification.KindDelivered, true, true)

	dto := ToOrderDTO(order)
	return &dto, nil
}

// Cancel cancels an order and notifies buyer, seller, and admin
func (s *OrderService) Cancel(ctx context.Context, requesterID uuid.UUID, role identity.Role, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if role != identity.RoleAdmin && order.BuyerID != requesterID && order.SellerID != requesterID {
		return nil, shared.ErrForbidden
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, order)
	s.notify(ctx, order, notification.KindCancelled, true, true)

	dto := ToOrderDTO(order)
	return &dto, nil
}

// Delete removes an order. Admin only.
func (s *OrderService) Delete(ctx context.Context, role identity.Role, orderID uuid.UUID) error {
	if role != identity.RoleAdmin {
		return shared.ErrForbidden
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}
	s.invalidateView(ctx, orderID)
	return nil
}

// afterTransition publishes buffered events and drops the cached view
func (s *OrderService) afterTransition(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher != nil {
		if events := order.GetDomainEvents(); len(events) > 0 {
			if err := s.eventPublisher.Publish(ctx, events...); err != nil {
				s.logger.Warn("failed to publish order events",
					zap.String("order_id", order.ID.String()),
					zap.Error(err))
			}
			order.ClearDomainEvents()
		}
	}
	s.invalidateView(ctx, order.ID)
}

func (s *OrderService) invalidateView(ctx context.Context, orderID uuid.UUID) {
	if s.viewCache == nil {
		return
	}
	if err := s.viewCache.Invalidate(ctx, orderID); err != nil {
		s.logger.Warn("failed to invalidate order view cache",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}

// notify fans a lifecycle notification out to the order's parties.
// Failures are logged and never surfaced to the caller.
func (s *OrderService) notify(ctx context.Context, order *ordering.Order, kind notification.Kind, withSeller, withAdmin bool) {
	if s.notifier == nil {
		return
	}

	recipients := make([]notification.Recipient, 0, 3)
	if buyer, err := s.userRepo.FindByID(ctx, order.BuyerID); err == nil {
		recipients = append(recipients, notification.Recipient{
			Name:     buyer.Name,
			Email:    buyer.Email,
			Language: buyer.Language,
		})
	} else {
		s.logger.Warn("cannot notify unknown buyer",
			zap.String("buyer_id", order.BuyerID.String()),
			zap.Error(err))
	}
	if withSeller {
		if seller, err := s.userRepo.FindByID(ctx, order.SellerID); err == nil {
			recipients = append(recipients, notification.Recipient{
				Name:     seller.Name,
				Email:    seller.Email,
				Language: seller.Language,
			})
		}
	}
	if withAdmin && s.adminEmail != "" {
		recipients = append(recipients, notification.Recipient{
			Name:     "Admin",
			Email:    s.adminEmail,
			Language: identity.DefaultLanguage,
		})
	}

	if err := s.notifier.Notify(ctx, order, recipients, kind); err != nil {
		s.logger.Warn("order notification failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
}
