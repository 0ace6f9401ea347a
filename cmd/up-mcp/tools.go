package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/banksia-labs/up-mcp/internal/upbank"
)

// toolset returns every MCP tool with its handler. The dispatcher executes
// exactly this set; registration and capability discovery both derive from it.
func toolset(c *upbank.Client) []server.ServerTool {
	return []server.ServerTool{
		{Tool: createPingTool(), Handler: handlePing(c)},
		{Tool: createGetAccountsTool(), Handler: handleGetAccounts(c)},
		{Tool: createGetAccountTool(), Handler: handleGetAccount(c)},
		{Tool: createGetTransactionsTool(), Handler: handleGetTransactions(c)},
		{Tool: createGetTransactionTool(), Handler: handleGetTransaction(c)},
		{Tool: createGetCategoriesTool(), Handler: handleGetCategories(c)},
		{Tool: createGetCategoryTool(), Handler: handleGetCategory(c)},
		{Tool: createCategorizeTransactionTool(), Handler: handleCategorizeTransaction(c)},
		{Tool: createGetTagsTool(), Handler: handleGetTags(c)},
		{Tool: createAddTransactionTagsTool(), Handler: handleAddTransactionTags(c)},
		{Tool: createRemoveTransactionTagsTool(), Handler: handleRemoveTransactionTags(c)},
		{Tool: createGetWebhooksTool(), Handler: handleGetWebhooks(c)},
		{Tool: createCreateWebhookTool(), Handler: handleCreateWebhook(c)},
		{Tool: createDeleteWebhookTool(), Handler: handleDeleteWebhook(c)},
		{Tool: createPingWebhookTool(), Handler: handlePingWebhook(c)},
	}
}

// registerTools registers all MCP tools on the server.
func registerTools(s *server.MCPServer, c *upbank.Client) {
	for _, st := range toolset(c) {
		s.AddTool(st.Tool, st.Handler)
	}
}

// --- Tool definitions ---

func createPingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Verify the Up API token and return the authorized user ID. Use this to check connectivity."),
	)
}

func createGetAccountsTool() mcp.Tool {
	return mcp.NewTool("get_accounts",
		mcp.WithDescription("List all Up accounts with their type, ownership, and current balance."),
	)
}

func createGetAccountTool() mcp.Tool {
	return mcp.NewTool("get_account",
		mcp.WithDescription("Get a single account by ID, including its balance and creation date."),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account to get")),
	)
}

func createGetTransactionsTool() mcp.Tool {
	return mcp.NewTool("get_transactions",
		mcp.WithDescription("List transactions with optional filters. Defaults to the last 7 days when no 'since' is given; pass an explicit 'since' for longer history (may take longer to load)."),
		mcp.WithString("account_id", mcp.Description("Restrict to a single account")),
		mcp.WithString("status", mcp.Description("Filter by status: HELD or SETTLED")),
		mcp.WithString("since", mcp.Description("Start of the date range, inclusive (RFC3339 or YYYY-MM-DD). Defaults to 7 days ago.")),
		mcp.WithString("until", mcp.Description("End of the date range, exclusive (RFC3339 or YYYY-MM-DD)")),
		mcp.WithString("category_id", mcp.Description("Filter by category ID")),
		mcp.WithString("tag_id", mcp.Description("Filter by tag")),
		mcp.WithBoolean("verbose", mcp.Description("Include IDs, status, and timestamps per transaction (default: false)")),
	)
}

func createGetTransactionTool() mcp.Tool {
	return mcp.NewTool("get_transaction",
		mcp.WithDescription("Get a single transaction by ID, including its category and tags."),
		mcp.WithString("transaction_id", mcp.Required(), mcp.Description("The ID of the transaction to get")),
	)
}

func createGetCategoriesTool() mcp.Tool {
	return mcp.NewTool("get_categories",
		mcp.WithDescription("List spending categories, optionally restricted to children of a parent category."),
		mcp.WithString("parent_id", mcp.Description("Only return categories under this parent category")),
	)
}

func createGetCategoryTool() mcp.Tool {
	return mcp.NewTool("get_category",
		mcp.WithDescription("Get a single category by ID, including its parent and child categories."),
		mcp.WithString("category_id", mcp.Required(), mcp.Description("The ID of the category to get")),
	)
}

func createCategorizeTransactionTool() mcp.Tool {
	return mcp.NewTool("categorize_transaction",
		mcp.WithDescription("Assign a category to a settled transaction, or clear its category. Omit category_id to remove the existing categorization."),
		mcp.WithString("transaction_id", mcp.Required(), mcp.Description("The ID of the transaction to categorize")),
		mcp.WithString("category_id", mcp.Description("The category ID to assign. Omit to remove the category.")),
	)
}

func createGetTagsTool() mcp.Tool {
	return mcp.NewTool("get_tags",
		mcp.WithDescription("List all tags the user has created."),
	)
}

func createAddTransactionTagsTool() mcp.Tool {
	return mcp.NewTool("add_transaction_tags",
		mcp.WithDescription("Add tags to a transaction. Adding a tag that is already attached has no effect."),
		mcp.WithString("transaction_id", mcp.Required(), mcp.Description("The ID of the transaction")),
		mcp.WithArray("tags", mcp.WithStringItems(), mcp.Required(), mcp.Description("Tag labels to add")),
	)
}

func createRemoveTransactionTagsTool() mcp.Tool {
	return mcp.NewTool("remove_transaction_tags",
		mcp.WithDescription("Remove tags from a transaction. Removing a tag that is not attached has no effect."),
		mcp.WithString("transaction_id", mcp.Required(), mcp.Description("The ID of the transaction")),
		mcp.WithArray("tags", mcp.WithStringItems(), mcp.Required(), mcp.Description("Tag labels to remove")),
	)
}

func createGetWebhooksTool() mcp.Tool {
	return mcp.NewTool("get_webhooks",
		mcp.WithDescription("List all registered webhooks."),
	)
}

func createCreateWebhookTool() mcp.Tool {
	return mcp.NewTool("create_webhook",
		mcp.WithDescription("Create a webhook. The response includes the secret key used to verify deliveries; it is only shown once."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL this webhook should post events to")),
		mcp.WithString("description", mcp.Description("Optional description of the webhook")),
	)
}

func createDeleteWebhookTool() mcp.Tool {
	return mcp.NewTool("delete_webhook",
		mcp.WithDescription("Delete a webhook by ID."),
		mcp.WithString("webhook_id", mcp.Required(), mcp.Description("The ID of the webhook to delete")),
	)
}

func createPingWebhookTool() mcp.Tool {
	return mcp.NewTool("ping_webhook",
		mcp.WithDescription("Send a PING event to a webhook's URL to verify it is reachable."),
		mcp.WithString("webhook_id", mcp.Required(), mcp.Description("The ID of the webhook to ping")),
	)
}
