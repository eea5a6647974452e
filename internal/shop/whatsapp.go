package shop

import (
	"fmt"
	"net/url"
	"strings"
)

// OrderMessage renders the WhatsApp order text for a cart: one block per
// unit with its hardware lines, then the total.
func OrderMessage(cart *Cart, siteURL string) string {
	var b strings.Builder

	b.WriteString("🛒 COMMANDE LAPTOP ROE 🛒\n\n")
	if siteURL != "" {
		fmt.Fprintf(&b, "📷 Image du produit: %s/images/laptop/laptop_1.png\n\n", strings.TrimRight(siteURL, "/"))
	}
	b.WriteString("💻 Caractéristiques commandées:\n\n")

	n := 0
	for _, line := range cart.Lines() {
		cfg := line.Configuration
		for q := int64(0); q < line.Quantity; q++ {
			n++
			fmt.Fprintf(&b, "📦 Ordinateur %d:\n", n)
			fmt.Fprintf(&b, "• RAM: %s\n", cfg.RAM)
			fmt.Fprintf(&b, "• Stockage: %s\n", cfg.Storage)
			fmt.Fprintf(&b, "• Processeur: %s %s Gen\n", cfg.CPU, cfg.Generation)
			fmt.Fprintf(&b, "• Carte graphique: %s\n", cfg.GPU)
			fmt.Fprintf(&b, "• Prix: $%.2f\n\n", cfg.Price)
		}
	}

	fmt.Fprintf(&b, "💰 Total: %s", cart.Total("USD").String())

	return b.String()
}

// OrderLink builds the wa.me deep link opening a chat with the shop number
// and the order message prefilled.
func OrderLink(number string, cart *Cart, siteURL string) (string, error) {
	if cart.IsEmpty() {
		return "", ErrEmptyCart
	}

	message := OrderMessage(cart, siteURL)
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message)), nil
}
