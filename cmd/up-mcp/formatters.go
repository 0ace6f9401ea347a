package main

import (
	"fmt"
	"strings"

	"github.com/banksia-labs/up-mcp/internal/common"
	"github.com/banksia-labs/up-mcp/internal/upbank"
)

func formatMoney(m upbank.Money) string {
	return common.FormatAmount(m.Value, m.CurrencyCode)
}

// formatAccounts formats an account list as a markdown table with a total row.
func formatAccounts(accounts []upbank.Account) string {
	if len(accounts) == 0 {
		return "No accounts found."
	}

	var sb strings.Builder
	sb.WriteString("# Up Accounts\n\n")
	sb.WriteString("| Name | Type | Ownership | Balance |\n")
	sb.WriteString("|------|------|-----------|--------:|\n")

	values := make([]string, 0, len(accounts))
	for _, a := range accounts {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			a.Attributes.DisplayName, a.Attributes.AccountType,
			a.Attributes.OwnershipType, formatMoney(a.Attributes.Balance)))
		values = append(values, a.Attributes.Balance.Value)
	}

	if total, ok := common.SumAmounts(values); ok {
		sb.WriteString(fmt.Sprintf("| **Total** | | | **%s** |\n", common.FormatDecimal(total, "AUD")))
	}

	sb.WriteString(fmt.Sprintf("\n%d account(s). Use get_account with an account ID for details.\n", len(accounts)))
	return sb.String()
}

// formatAccount formats a single account as a markdown detail block.
func formatAccount(a *upbank.Account) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Account: %s\n\n", a.Attributes.DisplayName))
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", a.ID))
	sb.WriteString(fmt.Sprintf("**Type:** %s\n", a.Attributes.AccountType))
	sb.WriteString(fmt.Sprintf("**Ownership:** %s\n", a.Attributes.OwnershipType))
	sb.WriteString(fmt.Sprintf("**Balance:** %s\n", formatMoney(a.Attributes.Balance)))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n", a.Attributes.CreatedAt.Format("2006-01-02 15:04")))
	return sb.String()
}

// formatTransactions formats a transaction list. The terse form carries just
// description and amount; verbose adds IDs, status, and timestamps.
func formatTransactions(transactions []upbank.Transaction, verbose bool) string {
	if len(transactions) == 0 {
		return "No transactions matched the filters."
	}

	var sb strings.Builder
	sb.WriteString("# Transactions\n\n")

	values := make([]string, 0, len(transactions))
	if verbose {
		sb.WriteString("| Created | Description | Amount | Status | ID |\n")
		sb.WriteString("|---------|-------------|-------:|--------|----|\n")
		for _, t := range transactions {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				t.Attributes.CreatedAt.Format("2006-01-02 15:04"),
				t.Attributes.Description, formatMoney(t.Attributes.Amount),
				t.Attributes.Status, t.ID))
			values = append(values, t.Attributes.Amount.Value)
		}
	} else {
		sb.WriteString("| Description | Amount |\n")
		sb.WriteString("|-------------|-------:|\n")
		for _, t := range transactions {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n",
				t.Attributes.Description, formatMoney(t.Attributes.Amount)))
			values = append(values, t.Attributes.Amount.Value)
		}
	}

	if total, ok := common.SumAmounts(values); ok {
		sb.WriteString(fmt.Sprintf("\n**Net total:** %s over %d transaction(s)\n",
			common.FormatDecimal(total, "AUD"), len(transactions)))
	}
	return sb.String()
}

// formatTransaction formats a single transaction as a markdown detail block.
func formatTransaction(t *upbank.Transaction) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Transaction: %s\n\n", t.Attributes.Description))
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", t.ID))
	sb.WriteString(fmt.Sprintf("**Status:** %s\n", t.Attributes.Status))
	sb.WriteString(fmt.Sprintf("**Amount:** %s\n", formatMoney(t.Attributes.Amount)))
	if t.Attributes.ForeignAmount != nil {
		sb.WriteString(fmt.Sprintf("**Foreign Amount:** %s\n", formatMoney(*t.Attributes.ForeignAmount)))
	}
	if t.Attributes.RawText != "" {
		sb.WriteString(fmt.Sprintf("**Raw Text:** %s\n", t.Attributes.RawText))
	}
	if t.Attributes.Message != "" {
		sb.WriteString(fmt.Sprintf("**Message:** %s\n", t.Attributes.Message))
	}

	if categoryID := t.CategoryID(); categoryID != "" {
		sb.WriteString(fmt.Sprintf("**Category:** %s\n", categoryID))
	} else {
		sb.WriteString("**Category:** (uncategorized)\n")
	}
	if tags := t.TagIDs(); len(tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags:** %s\n", strings.Join(tags, ", ")))
	} else {
		sb.WriteString("**Tags:** (none)\n")
	}

	sb.WriteString(fmt.Sprintf("**Created:** %s\n", t.Attributes.CreatedAt.Format("2006-01-02 15:04")))
	if t.Attributes.SettledAt != nil {
		sb.WriteString(fmt.Sprintf("**Settled:** %s\n", t.Attributes.SettledAt.Format("2006-01-02 15:04")))
	}
	return sb.String()
}

// formatCategories formats a category list as a markdown table.
func formatCategories(categories []upbank.Category) string {
	if len(categories) == 0 {
		return "No categories found."
	}

	var sb strings.Builder
	sb.WriteString("# Categories\n\n")
	sb.WriteString("| ID | Name | Parent |\n")
	sb.WriteString("|----|------|--------|\n")
	for _, c := range categories {
		parent := c.ParentID()
		if parent == "" {
			parent = "—"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", c.ID, c.Attributes.Name, parent))
	}
	sb.WriteString(fmt.Sprintf("\n%d categories.\n", len(categories)))
	return sb.String()
}

// formatCategory formats a single category as a markdown detail block.
func formatCategory(c *upbank.Category) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Category: %s\n\n", c.Attributes.Name))
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", c.ID))
	if parent := c.ParentID(); parent != "" {
		sb.WriteString(fmt.Sprintf("**Parent:** %s\n", parent))
	} else {
		sb.WriteString("**Parent:** (top-level)\n")
	}
	if len(c.Relationships.Children.Data) > 0 {
		children := make([]string, 0, len(c.Relationships.Children.Data))
		for _, ref := range c.Relationships.Children.Data {
			children = append(children, ref.ID)
		}
		sb.WriteString(fmt.Sprintf("**Children:** %s\n", strings.Join(children, ", ")))
	}
	return sb.String()
}

// formatTags formats a tag list.
func formatTags(tags []upbank.Tag) string {
	if len(tags) == 0 {
		return "No tags found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Tags (%d)\n\n", len(tags)))
	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("- %s\n", t.ID))
	}
	return sb.String()
}

// formatWebhooks formats a webhook list as a markdown table.
func formatWebhooks(webhooks []upbank.Webhook) string {
	if len(webhooks) == 0 {
		return "No webhooks registered."
	}

	var sb strings.Builder
	sb.WriteString("# Webhooks\n\n")
	sb.WriteString("| ID | URL | Description | Created |\n")
	sb.WriteString("|----|-----|-------------|--------|\n")
	for _, w := range webhooks {
		description := w.Attributes.Description
		if description == "" {
			description = "—"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			w.ID, w.Attributes.URL, description,
			w.Attributes.CreatedAt.Format("2006-01-02")))
	}
	return sb.String()
}

// formatWebhook formats a newly created webhook, including the one-time
// secret key when the API returned it.
func formatWebhook(w *upbank.Webhook) string {
	var sb strings.Builder
	sb.WriteString("# Webhook Created\n\n")
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", w.ID))
	sb.WriteString(fmt.Sprintf("**URL:** %s\n", w.Attributes.URL))
	if w.Attributes.Description != "" {
		sb.WriteString(fmt.Sprintf("**Description:** %s\n", w.Attributes.Description))
	}
	if w.Attributes.SecretKey != "" {
		sb.WriteString(fmt.Sprintf("**Secret Key:** %s\n", w.Attributes.SecretKey))
		sb.WriteString("\nStore the secret key now; it is not returned again.\n")
	}
	sb.WriteString(fmt.Sprintf("**Created:** %s\n", w.Attributes.CreatedAt.Format("2006-01-02 15:04")))
	return sb.String()
}

// formatWebhookEvent formats the delivery event returned by a webhook ping.
func formatWebhookEvent(ev *upbank.WebhookEvent) string {
	var sb strings.Builder
	sb.WriteString("# Webhook Ping Delivered\n\n")
	sb.WriteString(fmt.Sprintf("**Event ID:** %s\n", ev.ID))
	sb.WriteString(fmt.Sprintf("**Event Type:** %s\n", ev.Attributes.EventType))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n", ev.Attributes.CreatedAt.Format("2006-01-02 15:04")))
	return sb.String()
}
