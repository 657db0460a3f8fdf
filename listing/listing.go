package listing

import "errors"

// ErrQuotaExhausted signals that a provider's daily request quota is spent.
// Adapters wrap it so the engine can recognize the condition with errors.Is
// and put the source on cooldown instead of hammering it.
var ErrQuotaExhausted = errors.New("provider daily quota exhausted")

const DefaultLimit = 20

// Query is the normalized search request shared by every provider adapter.
// Source is "all" or a single registered source identifier.
type Query struct {
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	MinPrice int    `json:"minPrice,omitempty"`
	MaxPrice int    `json:"maxPrice,omitempty"`
	MinBeds  int    `json:"minBeds,omitempty"`
	MinBaths int    `json:"minBaths,omitempty"`
	Limit    int    `json:"limit"`
	Source   string `json:"source"`
}

// HasLocation reports whether the query carries at least one geographic
// filter. Providers behave undefined on an empty location, so the engine
// refuses to fan out without one.
func (q Query) HasLocation() bool {
	return q.City != "" || q.State != "" || q.ZipCode != ""
}

// PageSize returns the effective limit.
func (q Query) PageSize() int {
	if q.Limit > 0 {
		return q.Limit
	}
	return DefaultLimit
}

// Agent is the listing agent attached to a record when the provider reports one.
type Agent struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Brokerage string `json:"brokerage,omitempty"`
}

// Listing is the canonical property record. Every core field is always
// present: unresolved numerics map to 0 and unresolved strings to "", so
// downstream consumers never see null price/beds/baths/sqft.
type Listing struct {
	ID                 string   `json:"id"` // source-qualified, e.g. "realtor-9876"
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Zip                string   `json:"zip"`
	Price              int      `json:"price"` // whole dollars
	Beds               int      `json:"beds"`
	Baths              int      `json:"baths"`
	LivingAreaSqft     int      `json:"livingAreaSqft"`
	YearBuilt          int      `json:"yearBuilt,omitempty"`
	PropertyType       string   `json:"propertyType"`
	Status             string   `json:"status"`
	Photos             []string `json:"photos"`
	Description        string   `json:"description,omitempty"`
	MLSNumber          string   `json:"mlsNumber,omitempty"`
	DaysOnMarket       int      `json:"daysOnMarket,omitempty"`
	LotSizeDescription string   `json:"lotSizeDescription,omitempty"`
	GarageSpaces       int      `json:"garageSpaces,omitempty"`
	HasPool            bool     `json:"hasPool,omitempty"`
	IsWaterfront       bool     `json:"isWaterfront,omitempty"`
	SourceName         string   `json:"sourceName"`
	Agent              *Agent   `json:"listingAgent,omitempty"`
}
