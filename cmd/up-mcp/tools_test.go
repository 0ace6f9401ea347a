package main

import (
	"testing"

	"github.com/banksia-labs/up-mcp/internal/common"
	"github.com/banksia-labs/up-mcp/internal/upbank"
)

func registryClient() *upbank.Client {
	return upbank.NewClient(upbank.Config{Token: "t"}, common.NewSilentLogger())
}

func TestToolset_CoversAllOperations(t *testing.T) {
	expected := []string{
		"ping",
		"get_accounts",
		"get_account",
		"get_transactions",
		"get_transaction",
		"get_categories",
		"get_category",
		"categorize_transaction",
		"get_tags",
		"add_transaction_tags",
		"remove_transaction_tags",
		"get_webhooks",
		"create_webhook",
		"delete_webhook",
		"ping_webhook",
	}

	tools := toolset(registryClient())
	if len(tools) != len(expected) {
		t.Fatalf("Expected %d tools, got %d", len(expected), len(tools))
	}

	seen := map[string]bool{}
	for i, st := range tools {
		if st.Tool.Name != expected[i] {
			t.Errorf("Tool %d: expected %s, got %s", i, expected[i], st.Tool.Name)
		}
		if seen[st.Tool.Name] {
			t.Errorf("Duplicate tool name %s", st.Tool.Name)
		}
		seen[st.Tool.Name] = true
		if st.Handler == nil {
			t.Errorf("Tool %s has no handler", st.Tool.Name)
		}
		if st.Tool.Description == "" {
			t.Errorf("Tool %s has no description", st.Tool.Name)
		}
	}
}

func TestToolset_RequiredParameters(t *testing.T) {
	required := map[string][]string{
		"ping":                    {},
		"get_accounts":            {},
		"get_account":             {"account_id"},
		"get_transactions":        {},
		"get_transaction":         {"transaction_id"},
		"get_categories":          {},
		"get_category":            {"category_id"},
		"categorize_transaction":  {"transaction_id"},
		"get_tags":                {},
		"add_transaction_tags":    {"transaction_id", "tags"},
		"remove_transaction_tags": {"transaction_id", "tags"},
		"get_webhooks":            {},
		"create_webhook":          {"url"},
		"delete_webhook":          {"webhook_id"},
		"ping_webhook":            {"webhook_id"},
	}

	for _, st := range toolset(registryClient()) {
		want, ok := required[st.Tool.Name]
		if !ok {
			t.Errorf("Tool %s not covered by this test", st.Tool.Name)
			continue
		}
		got := st.Tool.InputSchema.Required
		if len(got) != len(want) {
			t.Errorf("%s: expected required params %v, got %v", st.Tool.Name, want, got)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: expected required params %v, got %v", st.Tool.Name, want, got)
				break
			}
		}
	}
}
