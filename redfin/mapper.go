package redfin

import (
	"encoding/json"
	"time"

	"github.com/yourorg/aggregator-api/listing"
)

type intValue struct {
	Value int `json:"value"`
}

type floatValue struct {
	Value float64 `json:"value"`
}

type stringValue struct {
	Value string `json:"value"`
}

type rHome struct {
	PropertyID listing.StringNumber `json:"propertyId"`
	MLSID      listing.StringNumber `json:"mlsId"`
	StreetLine stringValue          `json:"streetLine"`
	Street     string               `json:"street"` // flat alternate
	City       string               `json:"city"`
	State      string               `json:"state"`
	Zip        string               `json:"zip"`
	Price      intValue             `json:"price"`
	Beds       int                  `json:"beds"`
	Baths      float64              `json:"baths"`
	SqFt       intValue             `json:"sqFt"`
	YearBuilt  intValue             `json:"yearBuilt"`
	LotSize    floatValue           `json:"lotSize"`
	DOM        intValue             `json:"dom"`
	ListedAt   string               `json:"listingAddedDate"`
	MLSStatus  string               `json:"mlsStatus"`
	Type       string               `json:"propertyTypeName"`
	Remarks    string               `json:"marketingRemarks"`
	HasPool    bool                 `json:"hasPool"`
	Waterfront bool                 `json:"waterfront"`
	Garage     intValue             `json:"garageSpaces"`
	PhotoURL   string               `json:"photoUrl"`
	PhotoURLs  []string             `json:"photoUrls"`
	Agent      struct {
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		BrokerName string `json:"brokerName"`
	} `json:"listingAgent"`
}

func mapPayload(raw []byte) ([]listing.Listing, error) {
	var root struct {
		Homes []json.RawMessage `json:"homes"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}

	out := make([]listing.Listing, 0, len(root.Homes))
	for _, item := range root.Homes {
		var h rHome
		if err := json.Unmarshal(item, &h); err != nil {
			continue // malformed record, keep siblings
		}
		out = append(out, mapHome(h))
	}
	return out, nil
}

func mapHome(h rHome) listing.Listing {
	photos := make([]string, 0, len(h.PhotoURLs)+1)
	if h.PhotoURL != "" {
		photos = append(photos, h.PhotoURL)
	}
	for _, u := range h.PhotoURLs {
		if u != "" && u != h.PhotoURL {
			photos = append(photos, u)
		}
	}

	dom := listing.DaysOnMarketSince(parseListedAt(h.ListedAt))
	if dom == 0 {
		dom = listing.FirstPositive(h.DOM.Value)
	}

	l := listing.Listing{
		ID: listing.QualifyID(sourceID, listing.FirstNonEmpty(
			string(h.PropertyID), string(h.MLSID))),
		Address:            listing.FirstNonEmpty(h.StreetLine.Value, h.Street),
		City:               h.City,
		State:              h.State,
		Zip:                h.Zip,
		Price:              listing.FirstPositive(h.Price.Value),
		Beds:               listing.FirstPositive(h.Beds),
		Baths:              listing.FirstPositive(int(h.Baths)),
		LivingAreaSqft:     listing.FirstPositive(h.SqFt.Value),
		YearBuilt:          listing.FirstPositive(h.YearBuilt.Value),
		PropertyType:       h.Type,
		Status:             listing.FirstNonEmpty(h.MLSStatus, "for_sale"),
		Photos:             photos,
		Description:        h.Remarks,
		MLSNumber:          string(h.MLSID),
		DaysOnMarket:       dom,
		LotSizeDescription: listing.AcresDescription(h.LotSize.Value),
		GarageSpaces:       listing.FirstPositive(h.Garage.Value),
		HasPool:            h.HasPool,
		IsWaterfront:       h.Waterfront,
		SourceName:         sourceID,
	}
	if h.Agent.Name != "" || h.Agent.BrokerName != "" {
		l.Agent = &listing.Agent{
			Name:      h.Agent.Name,
			Phone:     h.Agent.Phone,
			Email:     h.Agent.Email,
			Brokerage: h.Agent.BrokerName,
		}
	}
	return l
}

func parseListedAt(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
