package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, to Recipient, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func testOrder(t *testing.T) *ordering.Order {
	t.Helper()
	seller := uuid.New()
	addr := valueobject.MustNewAddress("Amine B", "12 Rue Didouche", "Alger", "16000", "Alger", "Algeria", "+213550123456")
	items := []ordering.CartItem{{
		ProductID: uuid.New(),
		ClientID:  "c1",
		Name:      "Brake pads",
		Quantity:  1,
		Price:     decimal.NewFromInt(50),
		SellerID:  seller,
	}}
	quote, err := ordering.CalculateQuote(items, &addr, nil, ordering.DefaultDeliveryOptions(), ordering.ZeroTaxPolicy{})
	require.NoError(t, err)
	order, err := ordering.NewOrder(uuid.New(), seller, items, addr, "PayPal", quote)
	require.NoError(t, err)
	return order
}

func TestNotifySendsToAllRecipients(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	dispatcher := NewDispatcher(transport, zap.NewNop())
	recipients := []Recipient{
		{Name: "Buyer", Email: "buyer@example.com", Language: identity.LanguageFrench},
		{Name: "Seller", Email: "seller@example.com", Language: identity.LanguageEnglish},
	}

	err := dispatcher.Notify(context.Background(), testOrder(t), recipients, KindPurchaseReceipt)

	require.NoError(t, err)
	transport.AssertNumberOfCalls(t, "Send", 2)
}

func TestNotifyContinuesAfterFailingRecipient(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.MatchedBy(func(r Recipient) bool {
		return r.Email == "broken@example.com"
	}), mock.Anything, mock.Anything).Return(errors.New("smtp refused"))
	transport.On("Send", mock.Anything, mock.MatchedBy(func(r Recipient) bool {
		return r.Email == "ok@example.com"
	}), mock.Anything, mock.Anything).Return(nil)

	dispatcher := NewDispatcher(transport, zap.NewNop())
	recipients := []Recipient{
		{Name: "Broken", Email: "broken@example.com", Language: identity.LanguageFrench},
		{Name: "OK", Email: "ok@example.com", Language: identity.LanguageFrench},
	}

	err := dispatcher.Notify(context.Background(), testOrder(t), recipients, KindCancelled)

	require.NoError(t, err)
	transport.AssertNumberOfCalls(t, "Send", 2)
}

func TestNotifySkipsRecipientsWithoutEmail(t *testing.T) {
	transport := new(MockTransport)

	dispatcher := NewDispatcher(transport, zap.NewNop())
	err := dispatcher.Notify(context.Background(), testOrder(t), []Recipient{{Name: "Nobody"}}, KindDelivered)

	require.NoError(t, err)
	transport.AssertNotCalled(t, "Send")
}

func TestResolveLanguageFallsBackToFrench(t *testing.T) {
	assert.Equal(t, identity.LanguageFrench, resolveLanguage(identity.Language("ar")))
	assert.Equal(t, identity.LanguageFrench, resolveLanguage(identity.Language("")))
	assert.Equal(t, identity.LanguageFrench, resolveLanguage(identity.LanguageFrench))
	assert.Equal(t, identity.LanguageEnglish, resolveLanguage(identity.LanguageEnglish))
	assert.Equal(t, identity.LanguageEnglish, resolveLanguage(identity.Language("en-US")))
}

func TestRenderSubjectsDifferPerLanguage(t *testing.T) {
	order := testOrder(t)

	frSubject, frBody, err := Render(KindPurchaseReceipt, Recipient{Name: "A", Email: "a@b.c", Language: identity.LanguageFrench}, order)
	require.NoError(t, err)
	enSubject, enBody, err := Render(KindPurchaseReceipt, Recipient{Name: "A", Email: "a@b.c", Language: identity.LanguageEnglish}, order)
	require.NoError(t, err)

	assert.NotEqual(t, frSubject, enSubject)
	assert.NotEqual(t, frBody, enBody)
	assert.Contains(t, frBody, "50.00")

	_, _, err = Render(Kind("unknown"), Recipient{Name: "A"}, order)
	assert.Error(t, err)
}
