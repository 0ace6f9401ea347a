package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/banksia-labs/up-mcp/internal/upbank"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// toolError shapes a client failure as a tool-level error result. Transport
// faults, upstream errors, and missing resources all surface here; none of
// them escape the handler.
func toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, upbank.ErrNotAuthorized):
		return errorResult("Error: the Up API rejected the configured token")
	case upbank.IsNotFound(err):
		return errorResult(fmt.Sprintf("Not found: %v", err))
	default:
		return errorResult(fmt.Sprintf("Error: %v", err))
	}
}

// correlated returns a client copy whose logger carries a fresh correlation
// ID for this invocation.
func correlated(c *upbank.Client) *upbank.Client {
	return c.WithCorrelationId(uuid.NewString())
}

// parseTimeArg parses a date-time argument as RFC3339, falling back to a
// bare YYYY-MM-DD date (interpreted as midnight UTC).
func parseTimeArg(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q (use RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}

// --- Handlers ---

func handlePing(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := correlated(c).Ping(ctx)
		if errors.Is(err, upbank.ErrNotAuthorized) {
			// Matches the tool contract: a bad token is a ping outcome,
			// not a dispatch failure.
			return textResult("The token is invalid"), nil
		}
		if err != nil {
			return toolError(err), nil
		}
		return textResult("Authorized: " + userID), nil
	}
}

func handleGetAccounts(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accounts, err := correlated(c).Accounts(ctx)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatAccounts(accounts)), nil
	}
}

func handleGetAccount(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accountID, err := request.RequireString("account_id")
		if err != nil || accountID == "" {
			return errorResult("Error: account_id parameter is required"), nil
		}

		account, err := correlated(c).Account(ctx, accountID)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatAccount(account)), nil
	}
}

func handleGetTransactions(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := upbank.TransactionFilter{
			AccountID:  request.GetString("account_id", ""),
			CategoryID: request.GetString("category_id", ""),
			TagID:      request.GetString("tag_id", ""),
		}

		status := strings.ToUpper(request.GetString("status", ""))
		if status != "" && status != "HELD" && status != "SETTLED" {
			return errorResult("Error: status must be HELD or SETTLED"), nil
		}
		filter.Status = status

		if since := request.GetString("since", ""); since != "" {
			t, err := parseTimeArg(since)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: since: %v", err)), nil
			}
			filter.Since = t
		} else {
			// Unbounded listings walk the full history; default to a week.
			filter.Since = time.Now().AddDate(0, 0, -7)
		}

		if until := request.GetString("until", ""); until != "" {
			t, err := parseTimeArg(until)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: until: %v", err)), nil
			}
			filter.Until = t
		}

		transactions, err := correlated(c).Transactions(ctx, filter)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatTransactions(transactions, request.GetBool("verbose", false))), nil
	}
}

func handleGetTransaction(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		transactionID, err := request.RequireString("transaction_id")
		if err != nil || transactionID == "" {
			return errorResult("Error: transaction_id parameter is required"), nil
		}

		transaction, err := correlated(c).Transaction(ctx, transactionID)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatTransaction(transaction)), nil
	}
}

func handleGetCategories(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		categories, err := correlated(c).Categories(ctx, request.GetString("parent_id", ""))
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatCategories(categories)), nil
	}
}

func handleGetCategory(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		categoryID, err := request.RequireString("category_id")
		if err != nil || categoryID == "" {
			return errorResult("Error: category_id parameter is required"), nil
		}

		category, err := correlated(c).Category(ctx, categoryID)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatCategory(category)), nil
	}
}

func handleCategorizeTransaction(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		transactionID, err := request.RequireString("transaction_id")
		if err != nil || transactionID == "" {
			return errorResult("Error: transaction_id parameter is required"), nil
		}

		categoryID := request.GetString("category_id", "")
		if err := correlated(c).Categorize(ctx, transactionID, categoryID); err != nil {
			return toolError(err), nil
		}

		if categoryID == "" {
			return textResult(fmt.Sprintf("Removed category from transaction %s", transactionID)), nil
		}
		return textResult(fmt.Sprintf("Categorized transaction %s as %s", transactionID, categoryID)), nil
	}
}

func handleGetTags(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := correlated(c).Tags(ctx)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatTags(tags)), nil
	}
}

func handleAddTransactionTags(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		transactionID, err := request.RequireString("transaction_id")
		if err != nil || transactionID == "" {
			return errorResult("Error: transaction_id parameter is required"), nil
		}
		tags := request.GetStringSlice("tags", nil)
		if len(tags) == 0 {
			return errorResult("Error: tags parameter is required"), nil
		}

		if err := correlated(c).AddTags(ctx, transactionID, tags); err != nil {
			return toolError(err), nil
		}
		return textResult(fmt.Sprintf("Added %d tag(s) to transaction %s: %s",
			len(tags), transactionID, strings.Join(tags, ", "))), nil
	}
}

func handleRemoveTransactionTags(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		transactionID, err := request.RequireString("transaction_id")
		if err != nil || transactionID == "" {
			return errorResult("Error: transaction_id parameter is required"), nil
		}
		tags := request.GetStringSlice("tags", nil)
		if len(tags) == 0 {
			return errorResult("Error: tags parameter is required"), nil
		}

		if err := correlated(c).RemoveTags(ctx, transactionID, tags); err != nil {
			return toolError(err), nil
		}
		return textResult(fmt.Sprintf("Removed %d tag(s) from transaction %s: %s",
			len(tags), transactionID, strings.Join(tags, ", "))), nil
	}
}

func handleGetWebhooks(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		webhooks, err := correlated(c).Webhooks(ctx)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatWebhooks(webhooks)), nil
	}
}

func handleCreateWebhook(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		webhookURL, err := request.RequireString("url")
		if err != nil || webhookURL == "" {
			return errorResult("Error: url parameter is required"), nil
		}

		webhook, err := correlated(c).CreateWebhook(ctx, webhookURL, request.GetString("description", ""))
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatWebhook(webhook)), nil
	}
}

func handleDeleteWebhook(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		webhookID, err := request.RequireString("webhook_id")
		if err != nil || webhookID == "" {
			return errorResult("Error: webhook_id parameter is required"), nil
		}

		if err := correlated(c).DeleteWebhook(ctx, webhookID); err != nil {
			return toolError(err), nil
		}
		return textResult(fmt.Sprintf("Deleted webhook %s", webhookID)), nil
	}
}

func handlePingWebhook(c *upbank.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		webhookID, err := request.RequireString("webhook_id")
		if err != nil || webhookID == "" {
			return errorResult("Error: webhook_id parameter is required"), nil
		}

		event, err := correlated(c).PingWebhook(ctx, webhookID)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(formatWebhookEvent(event)), nil
	}
}
