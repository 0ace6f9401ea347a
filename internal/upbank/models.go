// Package upbank is a client for the Up Banking REST API (v1).
// All resources follow the JSON:API envelope the service returns:
// data / attributes / relationships / links.
package upbank

import "time"

// Money is the Up money object. Value is a signed decimal string in
// CurrencyCode units; ValueInBaseUnits is the same amount in cents.
type Money struct {
	CurrencyCode     string `json:"currencyCode"`
	Value            string `json:"value"`
	ValueInBaseUnits int64  `json:"valueInBaseUnits"`
}

// ResourceRef identifies a related resource inside a relationship block.
type ResourceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// RelationshipData is a to-one relationship. Data is nil when unset.
type RelationshipData struct {
	Data *ResourceRef `json:"data"`
}

// RelationshipList is a to-many relationship.
type RelationshipList struct {
	Data []ResourceRef `json:"data"`
}

// Account is an Up account (transactional or saver).
type Account struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes AccountAttributes `json:"attributes"`
}

// AccountAttributes holds the account's display fields and balance.
type AccountAttributes struct {
	DisplayName   string    `json:"displayName"`
	AccountType   string    `json:"accountType"`   // TRANSACTIONAL or SAVER
	OwnershipType string    `json:"ownershipType"` // INDIVIDUAL or JOINT
	Balance       Money     `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Transaction is a single Up transaction.
type Transaction struct {
	Type          string                   `json:"type"`
	ID            string                   `json:"id"`
	Attributes    TransactionAttributes    `json:"attributes"`
	Relationships TransactionRelationships `json:"relationships"`
}

// TransactionAttributes holds the transaction's amounts and timestamps.
// SettledAt is nil while the transaction is HELD.
type TransactionAttributes struct {
	Status        string     `json:"status"` // HELD or SETTLED
	RawText       string     `json:"rawText"`
	Description   string     `json:"description"`
	Message       string     `json:"message"`
	Amount        Money      `json:"amount"`
	ForeignAmount *Money     `json:"foreignAmount"`
	SettledAt     *time.Time `json:"settledAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// TransactionRelationships links a transaction to its category and tags.
type TransactionRelationships struct {
	Category RelationshipData `json:"category"`
	Parent   RelationshipData `json:"parent"`
	Tags     RelationshipList `json:"tags"`
}

// CategoryID returns the assigned category ID, or empty string when
// uncategorized.
func (t *Transaction) CategoryID() string {
	if t.Relationships.Category.Data == nil {
		return ""
	}
	return t.Relationships.Category.Data.ID
}

// TagIDs returns the IDs of all tags attached to the transaction.
func (t *Transaction) TagIDs() []string {
	ids := make([]string, 0, len(t.Relationships.Tags.Data))
	for _, ref := range t.Relationships.Tags.Data {
		ids = append(ids, ref.ID)
	}
	return ids
}

// Category is a spending category. Categories form a two-level tree;
// top-level categories have no parent.
type Category struct {
	Type          string                `json:"type"`
	ID            string                `json:"id"`
	Attributes    CategoryAttributes    `json:"attributes"`
	Relationships CategoryRelationships `json:"relationships"`
}

// CategoryAttributes holds the category display name.
type CategoryAttributes struct {
	Name string `json:"name"`
}

// CategoryRelationships links a category to its parent and children.
type CategoryRelationships struct {
	Parent   RelationshipData `json:"parent"`
	Children RelationshipList `json:"children"`
}

// ParentID returns the parent category ID, or empty string for top-level
// categories.
func (c *Category) ParentID() string {
	if c.Relationships.Parent.Data == nil {
		return ""
	}
	return c.Relationships.Parent.Data.ID
}

// Tag is a user-defined transaction label. The label itself is the ID;
// tags carry no other attributes.
type Tag struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Webhook is a registered event delivery endpoint.
type Webhook struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes WebhookAttributes `json:"attributes"`
}

// WebhookAttributes holds the webhook's target URL and metadata.
// SecretKey is only returned on creation.
type WebhookAttributes struct {
	URL         string    `json:"url"`
	Description string    `json:"description"`
	SecretKey   string    `json:"secretKey,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WebhookEvent is a delivery event, returned when pinging a webhook.
type WebhookEvent struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	Attributes WebhookEventAttributes `json:"attributes"`
}

// WebhookEventAttributes holds the event type and creation time.
type WebhookEventAttributes struct {
	EventType string    `json:"eventType"`
	CreatedAt time.Time `json:"createdAt"`
}
