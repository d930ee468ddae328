package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client adds collection operations over a KV store.
type Client struct {
	kv KV
}

func NewClient(kv KV) *Client {
	return &Client{kv: kv}
}

type identified struct {
	ID string `json:"id"`
}

// DocumentID extracts the "id" field of a raw JSON document.
func DocumentID(raw json.RawMessage) (string, error) {
	var doc identified
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("failed to read document id: %w", err)
	}
	return doc.ID, nil
}

func decodeCollection(ns string, value []byte) ([]json.RawMessage, error) {
	if value == nil {
		return []json.RawMessage{}, nil
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(value, &docs); err != nil {
		return nil, fmt.Errorf("collection %s is corrupted: %w", ns, err)
	}
	if docs == nil {
		docs = []json.RawMessage{}
	}
	return docs, nil
}

// RawCollection returns the documents stored under ns in order. An absent
// collection is empty.
func (c *Client) RawCollection(ctx context.Context, ns string) ([]json.RawMessage, error) {
	value, err := c.kv.Get(ctx, ns)
	if err != nil {
		return nil, err
	}
	return decodeCollection(ns, value)
}

// ListInCollection decodes every document stored under ns.
func ListInCollection[T any](ctx context.Context, c *Client, ns string) ([]T, error) {
	docs, err := c.RawCollection(ctx, ns)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", ns, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// GetInCollection returns the document with the given id, or (nil, nil).
func GetInCollection[T any](ctx context.Context, c *Client, ns, id string) (*T, error) {
	docs, err := c.RawCollection(ctx, ns)
	if err != nil {
		return nil, err
	}
	for _, raw := range docs {
		docID, err := DocumentID(raw)
		if err != nil {
			return nil, err
		}
		if docID != id {
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s in %s: %w", id, ns, err)
		}
		return &item, nil
	}
	return nil, nil
}

// UpdateCollection rewrites the collection under ns with whatever fn returns.
func (c *Client) UpdateCollection(ctx context.Context, ns string, fn func(docs []json.RawMessage) ([]json.RawMessage, error)) error {
	return c.kv.Update(ctx, ns, func(current []byte) ([]byte, error) {
		docs, err := decodeCollection(ns, current)
		if err != nil {
			return nil, err
		}
		next, err := fn(docs)
		if err != nil || next == nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}

// SaveInCollection replaces the document with the given id or appends it.
func (c *Client) SaveInCollection(ctx context.Context, ns, id string, item any) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", id, err)
	}
	return c.UpdateCollection(ctx, ns, func(docs []json.RawMessage) ([]json.RawMessage, error) {
		for i, doc := range docs {
			docID, err := DocumentID(doc)
			if err != nil {
				return nil, err
			}
			if docID == id {
				docs[i] = raw
				return docs, nil
			}
		}
		return append(docs, raw), nil
	})
}

// RemoveInCollection deletes the document with the given id. Removing an
// absent document is not an error.
func (c *Client) RemoveInCollection(ctx context.Context, ns, id string) error {
	return c.UpdateCollection(ctx, ns, func(docs []json.RawMessage) ([]json.RawMessage, error) {
		kept := make([]json.RawMessage, 0, len(docs))
		for _, doc := range docs {
			docID, err := DocumentID(doc)
			if err != nil {
				return nil, err
			}
			if docID != id {
				kept = append(kept, doc)
			}
		}
		if len(kept) == len(docs) {
			return nil, nil
		}
		return kept, nil
	})
}

// GetObject decodes the value under key into a new T, or returns (nil, nil).
func GetObject[T any](ctx context.Context, c *Client, key string) (*T, error) {
	value, err := c.kv.Get(ctx, key)
	if err != nil || value == nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(value, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return &out, nil
}

// SaveObject stores value under key as JSON.
func (c *Client) SaveObject(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.kv.Set(ctx, key, raw)
}
