package notification

import (
	"fmt"

	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"golang.org/x/text/language"
)

var supportedLanguages = []language.Tag{
	language.French, // first entry is the fallback
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// resolveLanguage maps a user preference onto a supported rendering
// language. Anything unrecognized falls back to French.
func resolveLanguage(pref identity.Language) identity.Language {
	_, index, _ := languageMatcher.Match(language.Make(string(pref)))
	if supportedLanguages[index] == language.English {
		return identity.LanguageEnglish
	}
	return identity.LanguageFrench
}

type template struct {
	subject string
	body    string
}

// Subject/body templates per kind and language. Bodies take the order
// short ID and the formatted total.
var templates = map[Kind]map[identity.Language]template{
	KindPurchaseReceipt: {
		identity.LanguageFrench: {
			subject: "Confirmation de votre commande %s",
			body:    "Bonjour %s,\n\nVotre commande %s d'un montant de %s a bien ete enregistree.\nLivraison estimee: %s.\n\nMerci de votre confiance,\nL'equipe Pyasti",
		},
		identity.LanguageEnglish: {
			subject: "Your order %s is confirmed",
			body:    "Hello %s,\n\nYour order %s for %s has been recorded.\nEstimated delivery: %s.\n\nThank you for shopping with us,\nThe Pyasti team",
		},
	},
	KindDelivered: {
		identity.LanguageFrench: {
			subject: "Votre commande %s a ete livree",
			body:    "Bonjour %s,\n\nVotre commande %s d'un montant de %s a ete livree le %s.\n\nA bientot,\nL'equipe Pyasti",
		},
		identity.LanguageEnglish: {
			subject: "Your order %s has been delivered",
			body:    "Hello %s,\n\nYour order %s for %s was delivered on %s.\n\nSee you soon,\nThe Pyasti team",
		},
	},
	KindCancelled: {
		identity.LanguageFrench: {
			subject: "Annulation de la commande %s",
			body:    "Bonjour %s,\n\nLa commande %s d'un montant de %s a ete annulee le %s.\n\nCordialement,\nL'equipe Pyasti",
		},
		identity.LanguageEnglish: {
			subject: "Order %s has been cancelled",
			body:    "Hello %s,\n\nOrder %s for %s was cancelled on %s.\n\nRegards,\nThe Pyasti team",
		},
	},
}

// Render produces the subject and body for one recipient
func Render(kind Kind, recipient Recipient, order *ordering.Order) (string, string, error) {
	if !kind.IsValid() {
		return "", "", fmt.Errorf("unknown notification kind: %s", kind)
	}

	lang := resolveLanguage(recipient.Language)
	tpl := templates[kind][lang]

	shortID := shortOrderID(order)
	total := valueobject.NewMoneyDZD(order.TotalPrice).String()

	var date string
	switch kind {
	case KindDelivered:
		if order.DeliveredAt != nil {
			date = order.DeliveredAt.Format("02/01/2006")
		}
	case KindCancelled:
		date = order.UpdatedAt.Format("02/01/2006")
	default:
		date = order.ExpectedDeliveryDate.Format("02/01/2006")
	}

	subject := fmt.Sprintf(tpl.subject, shortID)
	body := fmt.Sprintf(tpl.body, recipient.Name, shortID, total, date)
	return subject, body, nil
}

// shortOrderID renders the tail of the order UUID for display
func shortOrderID(order *ordering.Order) string {
	id := order.ID.String()
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
