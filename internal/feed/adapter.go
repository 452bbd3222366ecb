package feed

import (
	"encoding/json"
	"fmt"

	"github.com/gardenstock/stockwatch/internal/domain"
)

// Adapter parses one provider's response body into stock records.
// Providers have historically changed shape; each adapter is a strict
// parser that rejects records failing a basic shape check instead of
// coercing them.
type Adapter interface {
	Parse(body []byte) ([]domain.StockRecord, error)
}

// rawRecord uses pointer fields so absent keys are distinguishable
// from zero values.
type rawRecord struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	Category *string `json:"category"`
}

func (r rawRecord) validate(i int) (domain.StockRecord, error) {
	if r.Name == nil || *r.Name == "" {
		return domain.StockRecord{}, fmt.Errorf("record %d: missing name", i)
	}
	if r.Quantity == nil {
		return domain.StockRecord{}, fmt.Errorf("record %d (%s): missing quantity", i, *r.Name)
	}
	if *r.Quantity < 0 {
		return domain.StockRecord{}, fmt.Errorf("record %d (%s): negative quantity %d", i, *r.Name, *r.Quantity)
	}
	if r.Category == nil || *r.Category == "" {
		return domain.StockRecord{}, fmt.Errorf("record %d (%s): missing category", i, *r.Name)
	}
	return domain.StockRecord{Name: *r.Name, Quantity: *r.Quantity, Category: *r.Category}, nil
}

// FlatAdapter parses the canonical shape: a JSON array of
// {name, quantity, category} objects.
type FlatAdapter struct{}

func (FlatAdapter) Parse(body []byte) ([]domain.StockRecord, error) {
	var raw []rawRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse stock response: %w", err)
	}

	records := make([]domain.StockRecord, 0, len(raw))
	for i, r := range raw {
		rec, err := r.validate(i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// GroupedAdapter parses the nested provider shape where items arrive
// grouped per category:
//
//	{"categories": [{"name": "Seeds", "items": [{"name": ..., "quantity": ...}]}]}
//
// The group name becomes each item's category.
type GroupedAdapter struct{}

type groupedResponse struct {
	Categories []struct {
		Name  *string `json:"name"`
		Items []struct {
			Name     *string `json:"name"`
			Quantity *int    `json:"quantity"`
		} `json:"items"`
	} `json:"categories"`
}

func (GroupedAdapter) Parse(body []byte) ([]domain.StockRecord, error) {
	var resp groupedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse grouped stock response: %w", err)
	}
	if resp.Categories == nil {
		return nil, fmt.Errorf("grouped stock response missing categories")
	}

	var records []domain.StockRecord
	for gi, group := range resp.Categories {
		if group.Name == nil || *group.Name == "" {
			return nil, fmt.Errorf("group %d: missing name", gi)
		}
		for ii, item := range group.Items {
			r := rawRecord{Name: item.Name, Quantity: item.Quantity, Category: group.Name}
			rec, err := r.validate(ii)
			if err != nil {
				return nil, fmt.Errorf("group %s: %w", *group.Name, err)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}
